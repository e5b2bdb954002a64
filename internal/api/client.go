package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/feedbackboard/feedback-client/internal/models"
	"github.com/feedbackboard/feedback-client/internal/session"
)

const defaultTimeout = 10 * time.Second

// Client talks to the feedback API. Every authorized request carries
// the session's bearer token; every request carries a correlation ID.
type Client struct {
	baseURL  string
	session  *session.Store
	client   *http.Client
	validate *validator.Validate
}

// New creates a Client for the given base URL (e.g.
// "http://localhost:3005/api/feedback").
func New(baseURL string, s *session.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: s,
		client: &http.Client{
			Timeout: timeout,
		},
		validate: validator.New(),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	log.WithFields(log.Fields{
		"prefix":     "api",
		"method":     req.Method,
		"path":       req.URL.Path,
		"request_id": req.Header.Get("X-Request-ID"),
	}).Debug("outgoing request")

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": "api",
			"method": req.Method,
			"path":   req.URL.Path,
		}).WithError(err).Error("transport failure")
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}

// decodeError maps a non-2xx response to the error taxonomy, keeping
// the server-provided message when the body can be parsed.
func decodeError(resp *http.Response, fallback string) error {
	var body struct {
		Message string `json:"message"`
	}
	msg := fallback
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &UnauthorizedError{Message: msg}
	case http.StatusNotFound:
		return &NotFoundError{Message: msg}
	default:
		return &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}
}

// checkID rejects ids that are not ObjectID hex strings before a
// request URL is built from them.
func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid id format: %q", id)}
	}
	return nil
}

func buildMultipart(fields map[string]string, files []models.MediaFile) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("media", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &body, w.FormDataContentType(), nil
}

// Login authenticates with email and password and returns the token
// and user issued by the server. It does not touch the session; the
// caller decides when to establish it.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	payload := models.LoginRequest{Email: email, Password: password}
	if err := c.validate.Struct(payload); err != nil {
		return nil, &ValidationError{Message: MsgMissingFields}
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/usuarios/login", &body, "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp, "Erro ao fazer login.")
	}

	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return &auth, nil
}

// Register creates a new account and returns the token and user, same
// contract as Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	payload := models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := c.validate.Struct(payload); err != nil {
		return nil, &ValidationError{Message: MsgMissingFields}
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/usuarios/cadastro", &body, "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp, "Erro ao fazer cadastro.")
	}

	var auth models.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return &auth, nil
}

// ListFeedbacks fetches all feedback entries owned by the given user.
// An empty result is a valid success.
func (c *Client) ListFeedbacks(ctx context.Context, userID string) ([]models.Feedback, error) {
	if c.session.IsAnonymous() {
		return nil, &UnauthorizedError{Message: "Faça login para continuar."}
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/meus-feedbacks/%s", userID), nil, "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp, "Erro ao obter feedbacks.")
	}

	var feedbacks []models.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&feedbacks); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return feedbacks, nil
}

// CreateFeedback submits a new feedback entry as a multipart request
// and returns the canonical item assigned by the server.
func (c *Client) CreateFeedback(ctx context.Context, payload models.CreateFeedbackRequest) (*models.Feedback, error) {
	if err := c.validate.Struct(payload); err != nil {
		return nil, &ValidationError{Message: MsgMissingFields}
	}
	user, ok := c.session.CurrentUser()
	if !ok {
		return nil, &UnauthorizedError{Message: "Faça login para continuar."}
	}

	fields := map[string]string{
		"loja":       payload.Store,
		"produto":    payload.Product,
		"titulo":     payload.Title,
		"descricao":  payload.Description,
		"id_usuario": user.ID,
	}
	body, contentType, err := buildMultipart(fields, payload.Media)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/addfeedback", body, contentType)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp, "Erro ao adicionar feedback.")
	}

	var fb models.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&fb); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return &fb, nil
}

// UpdateFeedback submits changed fields for an existing entry. New
// media files are appended server-side to the existing sequence.
func (c *Client) UpdateFeedback(ctx context.Context, id string, payload models.UpdateFeedbackRequest) (*models.Feedback, error) {
	if err := c.validate.Struct(payload); err != nil {
		return nil, &ValidationError{Message: MsgMissingFields}
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"loja":      payload.Store,
		"produto":   payload.Product,
		"titulo":    payload.Title,
		"descricao": payload.Description,
	}
	body, contentType, err := buildMultipart(fields, payload.Media)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/atualizar/%s", id), body, contentType)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp, "Erro ao atualizar feedback.")
	}

	var out struct {
		Result models.Feedback `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return &out.Result, nil
}

// DeleteFeedback removes an entry. The server enforces ownership and
// answers 401 for a foreign entry regardless of what the UI allowed.
func (c *Client) DeleteFeedback(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/delete/%s", id), nil, "application/json")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp, "Erro ao deletar feedback.")
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// LikeFeedback increments the entry's like count by one and returns
// the updated entry. Each call increments; there is no unlike.
func (c *Client) LikeFeedback(ctx context.Context, id string) (*models.Feedback, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/likefeedbacks/%s/like", id), nil, "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp, "Erro ao curtir feedback.")
	}

	var fb models.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&fb); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return &fb, nil
}

// ListComments fetches the comment sub-collection of a feedback entry.
func (c *Client) ListComments(ctx context.Context, feedbackID string) ([]models.Comment, error) {
	if err := checkID(feedbackID); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/%s/comentarios", feedbackID), nil, "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeError(resp, "Erro ao obter comentários.")
	}

	var comments []models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&comments); err != nil {
		return nil, &NetworkError{Err: err}
	}
	return comments, nil
}

// AddComment posts a new comment on a feedback entry.
func (c *Client) AddComment(ctx context.Context, feedbackID, text string) error {
	payload := models.AddCommentRequest{Text: text}
	if err := c.validate.Struct(payload); err != nil {
		return &ValidationError{Message: MsgMissingFields}
	}
	if err := checkID(feedbackID); err != nil {
		return err
	}
	if c.session.IsAnonymous() {
		return &UnauthorizedError{Message: "Faça login para continuar."}
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/%s/comentarios", feedbackID), &body, "application/json")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp, "Erro ao adicionar comentário.")
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// DeleteComment removes a comment. The server enforces that only the
// comment's author may delete it.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	if err := checkID(commentID); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/comentarios/%s", commentID), nil, "application/json")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp, "Erro ao deletar comentário.")
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
