package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/shared/constants"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext creates a test gin.Context with the given method, path, and optional body.
func NewTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBytes))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// NewRawTestContext is NewTestContext with a literal body.
func NewRawTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// SetSessionContext stores session as the auth middleware would.
func SetSessionContext(c *gin.Context, session *auth.Session) {
	c.Set(constants.ContextKeySession, session)
}

// SetURLParam sets a URL parameter on the gin context.
func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// SetQueryParams sets query parameters on the gin context.
func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// ParseResponse parses the JSON response body into the target struct.
func ParseResponse(w *httptest.ResponseRecorder, target any) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// DataResponse mirrors utils.DataResponse for test assertions.
type DataResponse struct {
	Data     json.RawMessage `json:"data"`
	Restored *bool           `json:"restored,omitempty"`
}

// ErrorResponse mirrors utils.ErrorBody for test assertions.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ParseData unwraps {"data": ...} into target.
func ParseData(w *httptest.ResponseRecorder, target any) error {
	var resp DataResponse
	if err := ParseResponse(w, &resp); err != nil {
		return err
	}
	return json.Unmarshal(resp.Data, target)
}

// ParseError decodes an error body.
func ParseError(w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	_ = ParseResponse(w, &resp)
	return resp
}
