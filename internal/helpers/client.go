package helpers

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"time"

	"terraform-provider-pve/internal/clientmodels"
	"terraform-provider-pve/internal/constants"

	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pkg/errors"
)

type HttpCallerVerb string

// The lister is read only, GET is the only verb it sends.
const HttpCallerVerbGet HttpCallerVerb = "GET"

func (v HttpCallerVerb) String() string {
	return string(v)
}

const defaultHttpTimeout = 60 * time.Second

type HttpCaller struct {
	ctx                    context.Context
	disableTlsVerification bool
	timeout                time.Duration
}

// HttpCallerAuth holds a Proxmox VE API token, the id is in the
// user@realm!tokenname form.
type HttpCallerAuth struct {
	ApiTokenId     string
	ApiTokenSecret string
}

// Header returns the Authorization header value for the token.
func (a HttpCallerAuth) Header() string {
	return fmt.Sprintf("%s=%s=%s", constants.AUTH_SCHEME, a.ApiTokenId, a.ApiTokenSecret)
}

func (a HttpCallerAuth) IsEmpty() bool {
	return a.ApiTokenId == "" && a.ApiTokenSecret == ""
}

type HttpCallerResponse struct {
	StatusCode int
	Data       interface{}
	ApiError   *clientmodels.APIErrorResponse
}

func NewHttpCaller(ctx context.Context, disableTlsVerification bool) *HttpCaller {
	return &HttpCaller{
		ctx:                    ctx,
		disableTlsVerification: disableTlsVerification,
		timeout:                defaultHttpTimeout,
	}
}

// WithTimeout overrides the client timeout, zero keeps the default.
func (c *HttpCaller) WithTimeout(timeout time.Duration) *HttpCaller {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// HttpClient builds the client used for every call, it is also handed to
// third party API clients so they share the same TLS policy.
func (c *HttpCaller) HttpClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if c.disableTlsVerification {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 explicit opt-out
	}

	return &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}
}

func (c *HttpCaller) GetDataFromClient(url string, headers *map[string]string, auth *HttpCallerAuth, destination interface{}) (*HttpCallerResponse, error) {
	return c.RequestDataToClient(HttpCallerVerbGet, url, headers, auth, destination)
}

func (c *HttpCaller) RequestDataToClient(verb HttpCallerVerb, url string, headers *map[string]string, auth *HttpCallerAuth, destination interface{}) (*HttpCallerResponse, error) {
	tflog.Info(c.ctx, fmt.Sprintf("%v data from %s", verb, url))
	clientResponse := HttpCallerResponse{
		StatusCode: 0,
		Data:       nil,
	}

	if destination != nil {
		destType := reflect.TypeOf(destination)
		if destType.Kind() != reflect.Ptr {
			return &clientResponse, errors.New("dest must be a pointer type")
		}
	}

	if url == "" {
		return &clientResponse, errors.New("url cannot be empty")
	}

	req, err := http.NewRequestWithContext(c.ctx, verb.String(), url, nil)
	if err != nil {
		return &clientResponse, errors.Wrap(err, "error creating request")
	}

	if auth != nil && !auth.IsEmpty() {
		tflog.Debug(c.ctx, fmt.Sprintf("Setting Authorization header for token %s", auth.ApiTokenId))
		req.Header.Set(constants.AUTH_HEADER, auth.Header())
	}

	req.Header.Set("Accept", "application/json")
	if headers != nil && len(*headers) > 0 {
		for k, v := range *headers {
			req.Header.Set(k, v)
		}
	}

	response, err := c.HttpClient().Do(req)
	if err != nil {
		return &clientResponse, errors.Wrapf(err, "error %s data on %s", verb, url)
	}
	defer response.Body.Close()

	clientResponse.StatusCode = response.StatusCode
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errMsg clientmodels.APIErrorResponse
		body, bodyErr := io.ReadAll(response.Body)
		if bodyErr == nil && len(body) > 0 {
			if err := json.Unmarshal(body, &errMsg); err == nil {
				clientResponse.ApiError = &errMsg
			}
		}
		if clientResponse.ApiError == nil {
			clientResponse.ApiError = &clientmodels.APIErrorResponse{}
		}
		clientResponse.ApiError.Code = int64(response.StatusCode)

		if clientResponse.ApiError.Message == "" {
			clientResponse.ApiError.Message = statusReason(response)
		}

		if len(clientResponse.ApiError.Errors) > 0 {
			return &clientResponse, errors.Errorf("error on %s data from %s, status: %s, errors: %s", verb, url, response.Status, joinApiErrors(clientResponse.ApiError.Errors))
		}
		return &clientResponse, errors.Errorf("error on %s data from %s, status: %s", verb, url, response.Status)
	}

	if destination != nil {
		body, err := io.ReadAll(response.Body)
		if err != nil {
			return &clientResponse, errors.Wrapf(err, "error reading response body from %s", url)
		}

		if err := json.Unmarshal(body, destination); err != nil {
			return &clientResponse, errors.Wrapf(err, "error unmarshalling body from %s", url)
		}

		clientResponse.Data = destination
	}

	return &clientResponse, nil
}

// statusReason returns the reason phrase, Proxmox puts its error text there
// (for example "401 authentication failure").
func statusReason(response *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(response.Status, fmt.Sprintf("%d", response.StatusCode)))
	if reason == "" {
		reason = http.StatusText(response.StatusCode)
	}
	return reason
}

func joinApiErrors(apiErrors map[string]string) string {
	fields := make([]string, 0, len(apiErrors))
	for field := range apiErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.TrimSpace(apiErrors[field])))
	}
	return strings.Join(parts, "; ")
}
