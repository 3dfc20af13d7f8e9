package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/litmap/pkg/errors"
	"github.com/agentstation/litmap/pkg/logging"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// DecodeResponse decodes a JSON response into the target structure.
// A non-200 status or an undecodable body is reported as a RemoteError,
// the latter wrapping a ParseError.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapRemote(endpoint, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewRemoteError(endpoint, resp.StatusCode, truncate(strings.TrimSpace(string(body)), maxErrorBody))
	}

	if err := json.Unmarshal(body, target); err != nil {
		parseErr := errors.WrapParse("json", endpoint, err)
		return errors.WrapRemote(endpoint, resp.StatusCode, parseErr)
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
