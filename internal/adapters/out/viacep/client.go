// Package viacep looks up Brazilian postal codes (CEP) on the ViaCEP service.
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/ports"
)

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br"

// HTTPDoer executes requests; *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.PostalCodeLookup.
// Every failure, including "not found", is a kernel.InvalidPostalCodeError.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, httpClient HTTPDoer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type response struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	// ViaCEP answers unknown codes with {"erro": true}; some versions send the string "true".
	Erro any `json:"erro"`
}

func (r response) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// Lookup fetches {base}/ws/{digits}/json/.
func (c *Client) Lookup(ctx context.Context, code kernel.PostalCode) (ports.PostalAddress, error) {
	if err := code.Validate(); err != nil {
		return ports.PostalAddress{}, kernel.NewInvalidPostalCodeErrorWithCause("", err)
	}
	digits := code.String()

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.PostalAddress{}, kernel.NewInvalidPostalCodeErrorWithCause(digits, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.PostalAddress{}, kernel.NewInvalidPostalCodeErrorWithCause(digits, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.PostalAddress{}, kernel.NewInvalidPostalCodeErrorWithCause(digits,
			fmt.Errorf("viacep responded %d", resp.StatusCode))
	}

	var body response
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.PostalAddress{}, kernel.NewInvalidPostalCodeErrorWithCause(digits, err)
	}
	if body.notFound() {
		return ports.PostalAddress{}, kernel.NewInvalidPostalCodeError(digits)
	}

	returned := code
	if body.CEP != "" {
		if parsed, parseErr := kernel.NewPostalCode(body.CEP); parseErr == nil {
			returned = parsed
		}
	}

	return ports.PostalAddress{
		PostalCode: returned,
		Street:     strings.TrimSpace(body.Logradouro),
		District:   strings.TrimSpace(body.Bairro),
		City:       strings.TrimSpace(body.Localidade),
		Region:     strings.TrimSpace(body.UF),
	}, nil
}
