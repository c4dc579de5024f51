package payments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"payment_adapter/internal/usecase/interfaces"
)

var ErrMissingGatewayURL = errors.New("missing GATEWAY_API_URL")

const defaultGatewayTimeoutSeconds = 10

// GatewayClient speaks the gateway's flat key=value protocol: requests go out
// form-encoded, responses come back as newline-delimited key=value pairs. A
// connect/read timeout surfaces as an error to the executor, which converts it
// into a FAILURE transaction outcome rather than hanging.
type GatewayClient struct {
	apiURL     string
	httpClient *http.Client
}

var _ interfaces.IGatewayClient = (*GatewayClient)(nil)

func NewGatewayClient(apiURL string) (*GatewayClient, error) {
	if strings.TrimSpace(apiURL) == "" {
		log.Printf("[payment][gateway] missing GATEWAY_API_URL")
		return nil, ErrMissingGatewayURL
	}

	timeout := defaultGatewayTimeoutSeconds
	if v := strings.TrimSpace(os.Getenv("GATEWAY_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	log.Printf("[payment][gateway] client initialized url=%s timeout=%ds", apiURL, timeout)
	return &GatewayClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

func (g *GatewayClient) Send(ctx context.Context, request map[string]string) (map[string]string, error) {
	form := url.Values{}
	for key, value := range request {
		form.Set(key, value)
	}
	log.Printf("[payment][gateway] send start request=%s fields=%d", request["request"], len(request))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][gateway] send failed err=%v", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[payment][gateway] response read failed err=%v", err)
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[payment][gateway] unexpected http status=%d", resp.StatusCode)
		return nil, fmt.Errorf("gateway returned http %d", resp.StatusCode)
	}

	parsed, err := parseGatewayResponse(string(body))
	if err != nil {
		log.Printf("[payment][gateway] response parse failed err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] send success status=%s txid=%s", parsed["status"], parsed["txid"])
	return parsed, nil
}

func parseGatewayResponse(body string) (map[string]string, error) {
	lines := strings.FieldsFunc(body, func(r rune) bool { return r == '\n' || r == '\r' })
	if len(lines) == 0 {
		return nil, errors.New("empty gateway response")
	}

	parsed := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("malformed gateway response line %q", line)
		}
		parsed[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return parsed, nil
}
