package privacy

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func requestWithCookies(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/i", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestEvaluate_CookieSelection(t *testing.T) {
	tests := []struct {
		name       string
		cookieName string
		cookies    []*http.Cookie
		wantCookie string // expected value, "" means no cookie selected
	}{
		{
			name:       "no cookie name configured reads nothing",
			cookieName: "",
			cookies:    []*http.Cookie{{Name: "sp", Value: "abc"}},
			wantCookie: "",
		},
		{
			name:       "configured cookie present",
			cookieName: "sp",
			cookies:    []*http.Cookie{{Name: "sp", Value: "abc"}},
			wantCookie: "abc",
		},
		{
			name:       "configured cookie absent",
			cookieName: "sp",
			cookies:    []*http.Cookie{{Name: "other", Value: "abc"}},
			wantCookie: "",
		},
		{
			name:       "selects only the named cookie",
			cookieName: "sp",
			cookies: []*http.Cookie{
				{Name: "other", Value: "nope"},
				{Name: "sp", Value: "yes"},
			},
			wantCookie: "yes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := Evaluate(requestWithCookies(tt.cookies...), tt.cookieName, nil)

			if tt.wantCookie == "" {
				if pc.Cookie != nil {
					t.Errorf("Cookie = %v, want nil", pc.Cookie)
				}
				return
			}
			if pc.Cookie == nil {
				t.Fatal("Cookie = nil, want selected cookie")
			}
			if pc.Cookie.Value != tt.wantCookie {
				t.Errorf("Cookie.Value = %q, want %q", pc.Cookie.Value, tt.wantCookie)
			}
		})
	}
}

func TestEvaluate_DoNotTrack(t *testing.T) {
	matcher, err := NewDNTMatcher("dnt", "1")
	if err != nil {
		t.Fatalf("NewDNTMatcher: %v", err)
	}

	tests := []struct {
		name    string
		matcher *DNTMatcher
		cookies []*http.Cookie
		want    bool
	}{
		{
			name:    "no matcher configured is always false",
			matcher: nil,
			cookies: []*http.Cookie{{Name: "dnt", Value: "1"}},
			want:    false,
		},
		{
			name:    "matching cookie value",
			matcher: matcher,
			cookies: []*http.Cookie{{Name: "dnt", Value: "1"}},
			want:    true,
		},
		{
			name:    "non-matching cookie value",
			matcher: matcher,
			cookies: []*http.Cookie{{Name: "dnt", Value: "0"}},
			want:    false,
		},
		{
			name:    "cookie absent",
			matcher: matcher,
			cookies: nil,
			want:    false,
		},
		{
			name:    "anchored match rejects superstring values",
			matcher: matcher,
			cookies: []*http.Cookie{{Name: "dnt", Value: "11"}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := Evaluate(requestWithCookies(tt.cookies...), "", tt.matcher)
			if pc.DoNotTrack != tt.want {
				t.Errorf("DoNotTrack = %v, want %v", pc.DoNotTrack, tt.want)
			}
		})
	}
}

// The DNT cookie is read independently of the tracking cookie; the two
// names may differ and selecting one must not affect the other.
func TestEvaluate_IndependentCookies(t *testing.T) {
	matcher, err := NewDNTMatcher("dnt", "1|true")
	if err != nil {
		t.Fatalf("NewDNTMatcher: %v", err)
	}

	r := requestWithCookies(
		&http.Cookie{Name: "sp", Value: "user-123"},
		&http.Cookie{Name: "dnt", Value: "true"},
	)

	pc := Evaluate(r, "sp", matcher)
	if pc.Cookie == nil || pc.Cookie.Value != "user-123" {
		t.Errorf("Cookie = %v, want sp=user-123", pc.Cookie)
	}
	if !pc.DoNotTrack {
		t.Error("DoNotTrack = false, want true")
	}
}

func TestNewDNTMatcher_InvalidPattern(t *testing.T) {
	if _, err := NewDNTMatcher("dnt", "("); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
