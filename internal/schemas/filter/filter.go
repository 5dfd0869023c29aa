package filter

import (
	"regexp"
	"strconv"
	"strings"

	"terraform-provider-pve/internal/apiclient/apimodels"

	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/pkg/errors"
)

// Fields a filter can be applied to.
var Fields = []string{"vmid", "name", "status", "tags"}

type Filter struct {
	FieldName       types.String `tfsdk:"field_name"`
	Value           types.String `tfsdk:"value"`
	CaseInsensitive types.Bool   `tfsdk:"case_insensitive"`
}

// Parse reads the field=regex form used on the command line.
func Parse(expression string) (*Filter, error) {
	if expression == "" {
		return nil, nil
	}

	field, value, ok := strings.Cut(expression, "=")
	if !ok || field == "" {
		return nil, errors.Errorf("invalid filter %q, expected field=value", expression)
	}

	f := &Filter{
		FieldName:       types.StringValue(strings.ToLower(strings.TrimSpace(field))),
		Value:           types.StringValue(value),
		CaseInsensitive: types.BoolValue(false),
	}
	if _, err := f.compile(); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Filter) IsEmpty() bool {
	return s == nil || s.FieldName.ValueString() == ""
}

func (s *Filter) compile() (*regexp.Regexp, error) {
	if !isKnownField(s.FieldName.ValueString()) {
		return nil, errors.Errorf("unknown filter field %q, expected one of %s", s.FieldName.ValueString(), strings.Join(Fields, ", "))
	}

	pattern := s.Value.ValueString()
	if s.CaseInsensitive.ValueBool() {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter value %q", s.Value.ValueString())
	}
	return re, nil
}

// Apply keeps the machines whose field matches the filter value. The order of
// the input is preserved.
func (s *Filter) Apply(vms []apimodels.VirtualMachine) ([]apimodels.VirtualMachine, error) {
	if s.IsEmpty() {
		return vms, nil
	}

	re, err := s.compile()
	if err != nil {
		return nil, err
	}

	result := make([]apimodels.VirtualMachine, 0, len(vms))
	for _, vm := range vms {
		if re.MatchString(fieldValue(vm, s.FieldName.ValueString())) {
			result = append(result, vm)
		}
	}

	return result, nil
}

func fieldValue(vm apimodels.VirtualMachine, field string) string {
	switch field {
	case "vmid":
		return strconv.Itoa(vm.VMID)
	case "name":
		return vm.Name
	case "status":
		return vm.Status
	case "tags":
		return vm.Tags
	}
	return ""
}

func isKnownField(field string) bool {
	for _, f := range Fields {
		if f == field {
			return true
		}
	}
	return false
}
