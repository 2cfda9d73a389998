package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"brocante_back_end/internal/config"
	"brocante_back_end/internal/logger"
)

// Erreurs typées du service de modération. Un échec n'est JAMAIS traité comme
// un passage implicite : l'appelant doit bloquer l'écriture.
var (
	ErrModerationUnavailable = errors.New("service de modération indisponible")
	ErrModerationTimeout     = errors.New("service de modération : délai dépassé")
	ErrModerationAuth        = errors.New("service de modération : authentification refusée")
	ErrModerationRateLimited = errors.New("service de modération : trop de requêtes")
	ErrModerationMalformed   = errors.New("service de modération : réponse malformée")
)

// ModerationResult est le verdict rendu sur un contenu.
type ModerationResult struct {
	Passed bool
	Reason string
}

// ModerationClient interroge une API chat-completions externe pour obtenir un
// verdict JSON sur le texte puis, si le texte passe, sur l'image.
type ModerationClient struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewModerationClient() *ModerationClient {
	return &ModerationClient{
		apiURL: config.Get("XAI_API_URL", "https://api.x.ai/v1/chat/completions"),
		apiKey: config.Get("XAI_API_KEY", ""),
		model:  config.Get("XAI_MODEL", "grok-beta"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// verdict est le seul schéma de réponse accepté.
type verdict struct {
	IsViolation bool   `json:"isViolation"`
	Reason      string `json:"reason"`
}

const textPromptTemplate = `Vérifie si l'annonce suivante contient du contenu interdit :
Nom de l'article : %s
Description : %s

Réponds uniquement avec un JSON de la forme :
{"isViolation": false, "reason": "Conforme"}
Ne signale pas les fautes d'orthographe.
En cas de violation, réponds :
{"isViolation": true, "reason": "raison précise"}`

const imagePromptTemplate = `Vérifie si cette image d'annonce est conforme : %s

Réponds uniquement avec un JSON de la forme :
{"isViolation": false, "reason": "Conforme"}
En cas de violation, réponds :
{"isViolation": true, "reason": "raison précise"}`

// Moderate rend un verdict sur le nom/description, puis sur l'image si le
// texte est conforme et qu'une URL d'image est fournie.
func (m *ModerationClient) Moderate(ctx context.Context, name, description, imageURL string) (ModerationResult, error) {
	v, err := m.requestVerdict(ctx,
		"Tu es un expert en modération de contenu, tu réponds uniquement par un verdict JSON.",
		fmt.Sprintf(textPromptTemplate, name, description))
	if err != nil {
		return ModerationResult{}, err
	}
	if v.IsViolation {
		return ModerationResult{Passed: false, Reason: v.Reason}, nil
	}

	if imageURL != "" {
		v, err = m.requestVerdict(ctx,
			"Tu es un expert en modération d'images, tu réponds uniquement par un verdict JSON.",
			fmt.Sprintf(imagePromptTemplate, imageURL))
		if err != nil {
			return ModerationResult{}, err
		}
		if v.IsViolation {
			return ModerationResult{Passed: false, Reason: v.Reason}, nil
		}
	}

	return ModerationResult{Passed: true, Reason: "Contenu conforme"}, nil
}

// Probe vérifie que l'API répond, sans demander de verdict. Toute réponse
// HTTP compte comme vivante ; seule une erreur transport compte comme panne.
func (m *ModerationClient) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.apiURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	resp.Body.Close()
	return nil
}

func (m *ModerationClient) requestVerdict(ctx context.Context, system, prompt string) (verdict, error) {
	body, err := json.Marshal(chatRequest{
		Model: m.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Stream:      false,
		Temperature: 0,
	})
	if err != nil {
		return verdict{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return verdict{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return verdict{}, ErrModerationAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		return verdict{}, ErrModerationRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return verdict{}, fmt.Errorf("%w (HTTP %d)", ErrModerationUnavailable, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return verdict{}, fmt.Errorf("%w: %v", ErrModerationMalformed, err)
	}
	if len(chat.Choices) == 0 {
		return verdict{}, fmt.Errorf("%w: aucune réponse", ErrModerationMalformed)
	}

	content := stripCodeFences(chat.Choices[0].Message.Content)

	// Décodage strict : tout champ inconnu ou JSON invalide est une erreur,
	// jamais un passage implicite
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	var v verdict
	if err := dec.Decode(&v); err != nil {
		logger.Log.Warnw("verdict de modération illisible", "content", content, "error", err)
		return verdict{}, fmt.Errorf("%w: %v", ErrModerationMalformed, err)
	}

	return v, nil
}

// stripCodeFences retire l'éventuel habillage markdown autour du JSON
func stripCodeFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrModerationTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrModerationTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrModerationUnavailable, err)
}
