package apimodels

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type VirtualMachine struct {
	VMID     int     `json:"vmid"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	CPUs     int     `json:"cpus,omitempty"`
	CPU      float64 `json:"cpu,omitempty"`
	Mem      int64   `json:"mem,omitempty"`
	MaxMem   int64   `json:"maxmem,omitempty"`
	MaxDisk  int64   `json:"maxdisk,omitempty"`
	Uptime   int64   `json:"uptime,omitempty"`
	PID      int     `json:"pid,omitempty"`
	Tags     string  `json:"tags,omitempty"`
	Lock     string  `json:"lock,omitempty"`
	Template int     `json:"template,omitempty"`
}

// String renders the record the way the lister prints it.
func (vm VirtualMachine) String() string {
	return fmt.Sprintf("%d - %s (%s)", vm.VMID, vm.Name, vm.Status)
}

// TagList splits the semicolon separated tags field.
func (vm VirtualMachine) TagList() []string {
	return strings.FieldsFunc(vm.Tags, func(r rune) bool { return r == ';' || r == ',' || r == ' ' })
}

// virtualMachineRequired mirrors the fields a record cannot be listed without.
type virtualMachineRequired struct {
	VMID   *int    `json:"vmid"`
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// DecodeVirtualMachine decodes one element of the qemu list and fails when
// vmid, name or status is absent or has the wrong type.
func DecodeVirtualMachine(raw json.RawMessage) (VirtualMachine, error) {
	var vm VirtualMachine
	var required virtualMachineRequired
	if err := json.Unmarshal(raw, &required); err != nil {
		return vm, errors.Wrap(err, "invalid vm record")
	}

	missing := make([]string, 0)
	if required.VMID == nil {
		missing = append(missing, "vmid")
	}
	if required.Name == nil {
		missing = append(missing, "name")
	}
	if required.Status == nil {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return vm, errors.Errorf("vm record is missing %s", strings.Join(missing, ", "))
	}

	if err := json.Unmarshal(raw, &vm); err != nil {
		return vm, errors.Wrap(err, "invalid vm record")
	}

	return vm, nil
}

// VirtualMachineStatus is the body of /nodes/{node}/qemu/{vmid}/status/current.
type VirtualMachineStatus struct {
	VMID        int     `json:"vmid"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	QmpStatus   string  `json:"qmpstatus,omitempty"`
	CPUs        int     `json:"cpus,omitempty"`
	CPU         float64 `json:"cpu,omitempty"`
	Mem         int64   `json:"mem,omitempty"`
	MaxMem      int64   `json:"maxmem,omitempty"`
	MaxDisk     int64   `json:"maxdisk,omitempty"`
	Uptime      int64   `json:"uptime,omitempty"`
	PID         int     `json:"pid,omitempty"`
	Tags        string  `json:"tags,omitempty"`
	Lock        string  `json:"lock,omitempty"`
	HA          HAState `json:"ha,omitempty"`
	RunningQemu string  `json:"running-qemu,omitempty"`
}

type HAState struct {
	Managed int    `json:"managed"`
	State   string `json:"state,omitempty"`
}
