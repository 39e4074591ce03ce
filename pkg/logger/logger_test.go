package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	Init(logrus.InfoLevel)
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(os.Stdout) })
	return &buf
}

func TestWithPayload(t *testing.T) {
	buf := captureOutput(t)
	log := New("test-service")

	log.WithPayload(map[string]interface{}{"chunks": 4}).Info("indexing complete")

	out := buf.String()
	if !strings.Contains(out, `"chunks":4`) {
		t.Errorf("Expected payload data in the log output, got %s", out)
	}
	if !strings.Contains(out, "test-service") {
		t.Errorf("Expected the service name field, got %s", out)
	}

	// the original logger must stay payload-free
	buf.Reset()
	log.Info("plain message")
	if strings.Contains(buf.String(), "chunks") {
		t.Errorf("Expected WithPayload not to mutate the original logger, got %s", buf.String())
	}
}

func TestWithField(t *testing.T) {
	buf := captureOutput(t)
	log := New("test-service")

	log.WithField("mime_type", "text/plain").Info("saved upload")

	if !strings.Contains(buf.String(), `"mime_type":"text/plain"`) {
		t.Errorf("Expected the attached field in the log output, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != logrus.DebugLevel {
		t.Error("Expected debug to parse to DebugLevel")
	}
	if ParseLevel("nonsense") != logrus.InfoLevel {
		t.Error("Expected unknown level to default to InfoLevel")
	}
}
