package marketdata

import (
	"strings"
	"testing"
)

func TestParseProfileName(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantErr bool
	}{
		{
			name: "name header",
			html: `<html><body><div class="stock_info"><span class="name">中国平安</span></div></body></html>`,
			want: "中国平安",
		},
		{
			name: "title fallback",
			html: `<html><head><title>中国平安(601318)_公司资料</title></head><body></body></html>`,
			want: "中国平安",
		},
		{
			name: "fullwidth paren in title",
			html: `<html><head><title>平安银行（000001）</title></head><body></body></html>`,
			want: "平安银行",
		},
		{
			name:    "nothing found",
			html:    `<html><body><p>404</p></body></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProfileName(strings.NewReader(tt.html))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseProfileName: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
