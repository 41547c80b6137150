package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(query string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "limit=50&offset=10", 50, 10},
		{"limit capped", "limit=500", MaxLimit, 0},
		{"zero limit", "limit=0", DefaultLimit, 0},
		{"negative offset", "offset=-5", DefaultLimit, 0},
		{"garbage", "limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(tt.query)
			if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("FromContext(%q) = %+v, want limit=%d offset=%d",
					tt.query, p, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	if r := NewResponse(nil, 100, 20, 0); !r.HasMore {
		t.Error("expected has_more with 80 remaining")
	}
	if r := NewResponse(nil, 100, 20, 80); r.HasMore {
		t.Error("expected no more on last page")
	}
	if r := NewResponse(nil, 0, 20, 0); r.HasMore {
		t.Error("expected no more for empty result")
	}
}

func TestParams_Navigation(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if !p.HasNext(100) {
		t.Error("expected next page at offset 40 of 100")
	}
	if p.HasNext(60) {
		t.Error("expected no next page at offset 40 of 60")
	}
	if !p.HasPrevious() {
		t.Error("expected previous page at offset 40")
	}
	if got := p.NextOffset(); got != 60 {
		t.Errorf("NextOffset() = %d, want 60", got)
	}
	if got := p.PreviousOffset(); got != 20 {
		t.Errorf("PreviousOffset() = %d, want 20", got)
	}

	first := Params{Limit: 20, Offset: 10}
	if got := first.PreviousOffset(); got != 0 {
		t.Errorf("PreviousOffset() = %d, want 0", got)
	}
}
