package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mu       sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id, contents string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages[id] = contents
}

func TestDumpMessagesRedactsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "secret-session"})
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	DumpMessages(client, "login", out)

	_, err := client.R().
		SetHeader("Cookie", "X-User=abc").
		SetFormData(map[string]string{
			"handleOrEmail": "tourist",
			"password":      "hunter2",
		}).
		Post(srv.URL + "/enter")
	require.NoError(t, err)

	require.Len(t, out.messages, 1)
	message := out.messages["login-0001.txt"]
	require.Contains(t, message, "handleOrEmail=tourist")
	require.Contains(t, message, "<html>ok</html>")
	require.NotContains(t, message, "hunter2")
	require.NotContains(t, message, "secret-session")
	require.NotContains(t, message, "X-User=abc")
}

func TestDumpMessagesNilOutput(t *testing.T) {
	client := resty.New()
	require.NotPanics(t, func() { DumpMessages(client, "noop", nil) })
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	out.Write("a.txt", "contents")

	contents, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(contents))
}

func TestRedactForm(t *testing.T) {
	require.Equal(t, "action=enter&password=%3CREDACTED%3E", redactForm("action=enter&password=x"))
	require.Equal(t, `{"a":1}`, redactForm(`{"a":1}`))
}
