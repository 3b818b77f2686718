package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"
)

// results endpoints return whole counties at once, dumps keep the head
const maxDumpedBody = 64 * 1024

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out []string
	for _, k := range keys {
		for _, v := range headers[k] {
			out = append(out, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(out, "\n")
}

func truncateBody(body string) string {
	if len(body) <= maxDumpedBody {
		return body
	}
	return fmt.Sprintf("%s\n... (%d more bytes)", body[:maxDumpedBody], len(body)-maxDumpedBody)
}

func formatRequestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	// bodiless requests (GET) hand back a nil reader
	if body == nil {
		return ""
	}
	defer body.Close()
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return truncateBody(string(readBody))
}

func writeSection(out *strings.Builder, title string, lines ...string) {
	fmt.Fprintf(out, "---- %s ----\n", title)
	for _, l := range lines {
		if l == "" {
			continue
		}
		out.WriteString("\n")
		out.WriteString(l)
		out.WriteString("\n")
	}
	out.WriteString("\n")
}

// formatHttpMessage renders one request/response exchange as plain text.
func formatHttpMessage(res *resty.Response) string {
	var requestHeaders string
	if res.Request.RawRequest != nil {
		requestHeaders = formatHeaders(res.Request.RawRequest.Header)
	}

	responseUrl := res.Request.URL
	if res.RawResponse != nil {
		redirected, err := res.RawResponse.Location()
		if err == nil {
			responseUrl = redirected.String()
		}
	}

	var out strings.Builder
	writeSection(
		&out, "REQUEST",
		fmt.Sprintf("%s %s", res.Request.Method, res.Request.URL),
		requestHeaders,
		formatRequestBody(res.Request.RawRequest),
	)
	writeSection(
		&out, "RESPONSE",
		fmt.Sprintf("%d %s (%s)", res.StatusCode(), responseUrl, res.Time()),
		formatHeaders(res.Header()),
		truncateBody(res.String()),
	)
	return strings.TrimSuffix(out.String(), "\n")
}
