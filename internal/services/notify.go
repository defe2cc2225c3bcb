package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/francescamaronna/appcolaboraciones/internal/models"
)

type webhookPayload struct {
	Event       string    `json:"event"`
	ProjectID   uint      `json:"project_id"`
	ProjectName string    `json:"project_name"`
	RequestID   uint      `json:"request_id"`
	UserID      uint      `json:"user_id"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// NotifyRequestEvent posts a compact JSON payload to the project's configured
// webhook, if any. Delivery failures are logged, never surfaced to the user:
// the request mutation already committed.
func NotifyRequestEvent(event string, project models.Project, request models.CollaborationRequest) {
	if project.WebhookURL == "" {
		return
	}

	payload := webhookPayload{
		Event:       event,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		RequestID:   request.ID,
		UserID:      request.UserID,
		Status:      request.Status,
		Timestamp:   time.Now(),
	}

	go func() {
		if err := postWebhook(project.WebhookURL, payload); err != nil {
			log.Printf("Webhook delivery failed for project %d: %v", project.ID, err)
		}
	}()
}

func postWebhook(url string, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
