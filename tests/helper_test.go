package tests_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"testing"
	"time"

	"eventsite/clients"
	"eventsite/config"
	"eventsite/db"
	"eventsite/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lithammer/shortuuid/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

func getEnvOrDefault(key string, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisClient := redis.NewClient(&redis.Options{
		Addr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
	})
	t.Cleanup(func() {
		if err := redisClient.Close(); err != nil {
			t.Log("failed to close redis client:", err)
		}
	})

	return redisClient
}

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dbConn, err := sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := dbConn.Close(); err != nil {
			t.Log("failed to close db connection:", err)
		}
	})

	require.NoError(t, db.InitialiseDB(context.Background(), dbConn))

	return dbConn
}

func startService(
	t *testing.T,
	cfg config.Config,
	redisClient *redis.Client,
	dbConn *sqlx.DB,
	emailClient clients.EmailClient,
) {
	t.Helper()

	logger := watermill.NewStdLogger(false, false)

	svc, err := service.New(cfg, logger, redisClient, dbConn, emailClient)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		if err := svc.Run(ctx); err != nil {
			t.Log("service stopped:", err)
		}
	}()

	waitForHttpServer(t)
}

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get(baseURL + "/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			if assert.Less(t, resp.StatusCode, 300, "API not ready, http status: %d", resp.StatusCode) {
				return
			}
		},
		time.Second*10,
		time.Millisecond*50,
	)
}

// tiny valid PNG header, enough to pass the image content-type check
var proofImage = []byte("\x89PNG\r\n\x1a\n fake image body")

func submitPayment(t *testing.T, packageID string, fields map[string]string) string {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="proof"; filename="proof.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(proofImage)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	httpReq, err := http.NewRequest(
		http.MethodPost,
		baseURL+"/api/payment/"+packageID,
		body,
	)
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var response struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	require.NotEmpty(t, response.OrderID)

	return response.OrderID
}

func postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewBuffer(raw))
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)

	return resp
}

func assertEmailSent(t *testing.T, emails *EmailCapture, templateID string, match func(EmailSend) bool) EmailSend {
	t.Helper()

	assert.EventuallyWithT(
		t,
		func(collectT *assert.CollectT) {
			sent := len(emails.Sends())
			t.Log("emails sent", sent)

			assert.Greater(collectT, sent, 0, "no emails sent")
		},
		10*time.Second,
		100*time.Millisecond,
	)

	var found EmailSend
	var ok bool
	require.EventuallyWithT(
		t,
		func(collectT *assert.CollectT) {
			for _, send := range emails.Sends() {
				if send.TemplateID != templateID {
					continue
				}
				if !match(send) {
					continue
				}
				found = send
				ok = true
				return
			}
			assert.Truef(collectT, ok, "email with template %s not found", templateID)
		},
		10*time.Second,
		100*time.Millisecond,
	)

	return found
}
