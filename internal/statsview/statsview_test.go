package statsview

import "testing"

func TestURL(t *testing.T) {
	if got := URL(""); got != "http://localhost:12600/debug/statsview" {
		t.Errorf("URL(\"\") = %q", got)
	}
	if got := URL("127.0.0.1:9000"); got != "http://127.0.0.1:9000/debug/statsview" {
		t.Errorf("URL = %q", got)
	}
}
