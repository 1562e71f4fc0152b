package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/vericred/vericred-desk/internal/config"
	"github.com/vericred/vericred-desk/internal/logger"
	"github.com/vericred/vericred-desk/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.BaseURL and configures the underlying HTTP client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.Backend, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetNonce implements [ServerAdapter]. It POSTs the wallet address to
// POST /getnonce and returns the nonce the backend expects to see signed.
func (h *httpServerAdapter) GetNonce(ctx context.Context, address string) (string, error) {
	var result struct {
		Nonce string `json:"nonce"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"metamask_address": address}).
		SetResult(&result).
		Post("/getnonce")
	if err != nil {
		return "", fmt.Errorf("get nonce request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if result.Nonce == "" {
		return "", fmt.Errorf("get nonce: empty nonce in response")
	}

	return result.Nonce, nil
}

// MetamaskLogin implements [ServerAdapter]. It POSTs the address and the
// signature to POST /auth/metamasklogin. The token arrives as the raw
// response body, on success it is stored via SetToken.
func (h *httpServerAdapter) MetamaskLogin(ctx context.Context, address, signature string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"metamask_address": address, "signature": signature}).
		Post("/auth/metamasklogin")
	if err != nil {
		return "", fmt.Errorf("metamask login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(resp.Body()))
	if token == "" {
		return "", fmt.Errorf("metamask login: empty token in response")
	}

	h.SetToken(token)
	return token, nil
}

// Students implements [ServerAdapter]. A 404 maps to [ErrNoAccount] before
// the generic status mapping so callers can branch on it.
func (h *httpServerAdapter) Students(ctx context.Context) ([]models.StudentRecord, error) {
	resp, err := h.authedRequest(ctx).Get("/students")
	if err != nil {
		return nil, fmt.Errorf("students request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNoAccount
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	// Either a bare array or a single object.
	var list []models.StudentRecord
	if err = json.Unmarshal(resp.Body(), &list); err == nil {
		return list, nil
	}
	var one models.StudentRecord
	if err = json.Unmarshal(resp.Body(), &one); err != nil {
		return nil, fmt.Errorf("decode students response: %w", err)
	}
	return []models.StudentRecord{one}, nil
}

// Dashboard implements [ServerAdapter]. The address is sent redundantly: the
// x-metamask-address header plus both query spellings, newer and older
// backend revisions read different ones.
func (h *httpServerAdapter) Dashboard(ctx context.Context, address string) (json.RawMessage, error) {
	req := h.authedRequest(ctx)
	if address != "" {
		req.SetHeader("x-metamask-address", address).
			SetQueryParam("metamaskAddress", address).
			SetQueryParam("metamask_address", address)
	}

	resp, err := req.Get("/dashboard")
	if err != nil {
		return nil, fmt.Errorf("dashboard request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body()), nil
}

// UploadToIPFS implements [ServerAdapter]. The content address is resolved
// from the response by ordered aliases; first non-empty wins.
func (h *httpServerAdapter) UploadToIPFS(ctx context.Context, metadata models.CredentialMetadata) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(metadata).
		Post("/api/uploadtoipfs")
	if err != nil {
		return "", fmt.Errorf("upload to ipfs request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var result map[string]any
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	link := models.FirstString(result, "ipfsurl", "ipfslink", "ipfsLink")
	if link == "" {
		return "", ErrNoContentAddress
	}
	return link, nil
}

// PostTransactionHash implements [ServerAdapter].
func (h *httpServerAdapter) PostTransactionHash(ctx context.Context, txHash string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"transaction_hash": txHash}).
		Post("/transactionhash")
	if err != nil {
		return fmt.Errorf("post transaction hash request: %w", err)
	}

	return mapHTTPError(resp)
}

// PostMintedRecord implements [ServerAdapter].
func (h *httpServerAdapter) PostMintedRecord(ctx context.Context, record models.MintedCredentialRecord) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post("/credmint")
	if err != nil {
		return fmt.Errorf("post minted record request: %w", err)
	}

	return mapHTTPError(resp)
}

// PendingForOrg implements [ServerAdapter]. Both a bare array and a
// {rows: [...]} envelope are accepted; an empty body means no rows.
func (h *httpServerAdapter) PendingForOrg(ctx context.Context) ([]map[string]any, error) {
	resp, err := h.authedRequest(ctx).Get("/api/pending/for-org")
	if err != nil {
		return nil, fmt.Errorf("pending for org request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	rows, err := decodeRows(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode pending response: %w", err)
	}
	return rows, nil
}

// ApprovePending implements [ServerAdapter].
func (h *httpServerAdapter) ApprovePending(ctx context.Context, studentWallet string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"student_wallet": studentWallet}).
		Patch("/api/pending/approve")
	if err != nil {
		return fmt.Errorf("approve pending request: %w", err)
	}

	return mapHTTPError(resp)
}

// RequestMint implements [ServerAdapter].
func (h *httpServerAdapter) RequestMint(ctx context.Context, studentWallet, universityWallet string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"student_wallet":    studentWallet,
			"university_wallet": universityWallet,
		}).
		Post("/api/pending/request")
	if err != nil {
		return fmt.Errorf("request mint request: %w", err)
	}

	return mapHTTPError(resp)
}

// ShowUser implements [ServerAdapter]. The first profile object is picked
// out of whatever envelope the backend used.
func (h *httpServerAdapter) ShowUser(ctx context.Context, address string) (json.RawMessage, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"metamask_address": address}).
		Post("/showuser")
	if err != nil {
		return nil, fmt.Errorf("show user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return extractFirstObject(resp.Body())
}

// UserCreds implements [ServerAdapter].
func (h *httpServerAdapter) UserCreds(ctx context.Context, address string) ([]map[string]any, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"metamask_address": address}).
		Post("/usercreds")
	if err != nil {
		return nil, fmt.Errorf("user creds request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	rows, err := decodeRows(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode user creds response: %w", err)
	}
	return rows, nil
}

// Universities implements [ServerAdapter].
func (h *httpServerAdapter) Universities(ctx context.Context) ([]models.University, error) {
	resp, err := h.authedRequest(ctx).Get("/universities")
	if err != nil {
		return nil, fmt.Errorf("universities request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var list []models.University
	if err = json.Unmarshal(resp.Body(), &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Rows []models.University `json:"rows"`
	}
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode universities response: %w", err)
	}
	return envelope.Rows, nil
}

// SpecificUniversity implements [ServerAdapter].
func (h *httpServerAdapter) SpecificUniversity(ctx context.Context, address string) (models.University, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"metamask_address": address}).
		Post("/api/specific-university")
	if err != nil {
		return models.University{}, fmt.Errorf("specific university request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.University{}, err
	}

	raw, err := extractFirstObject(resp.Body())
	if err != nil {
		return models.University{}, fmt.Errorf("decode specific university response: %w", err)
	}

	var uni models.University
	if err = json.Unmarshal(raw, &uni); err != nil {
		return models.University{}, fmt.Errorf("decode specific university response: %w", err)
	}
	return uni, nil
}

// Transactions implements [ServerAdapter]. The ledger is public; no bearer
// token is attached. Rows without a transaction hash are dropped.
func (h *httpServerAdapter) Transactions(ctx context.Context) ([]models.LedgerTransaction, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/transactions")
	if err != nil {
		return nil, fmt.Errorf("transactions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	rows, err := decodeRows(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode transactions response: %w", err)
	}

	txns := make([]models.LedgerTransaction, 0, len(rows))
	for _, row := range rows {
		if txn, ok := models.ParseLedgerTransaction(row); ok {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decodeRows accepts a bare JSON array, a {rows: [...]} envelope, or an empty
// body and returns the rows.
func decodeRows(body []byte) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, nil
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &rows); err == nil {
		return rows, nil
	}

	var envelope struct {
		Rows []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, err
	}
	return envelope.Rows, nil
}

// extractFirstObject picks the first object out of a bare object, a bare
// array, or a {data: [...]} envelope.
func extractFirstObject(body []byte) (json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err == nil {
		if len(arr) == 0 {
			return nil, fmt.Errorf("empty response array")
		}
		return arr[0], nil
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data[0], nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("decode response object: %w", err)
	}
	return json.RawMessage(body), nil
}
