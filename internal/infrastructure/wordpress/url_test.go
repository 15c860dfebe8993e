package wordpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare domain gets https", in: "example.com", want: "https://example.com"},
		{name: "trailing slash stripped", in: "https://example.com/", want: "https://example.com"},
		{name: "multiple trailing slashes stripped", in: "https://example.com///", want: "https://example.com"},
		{name: "whitespace trimmed", in: "  blog.example.com  ", want: "https://blog.example.com"},
		{name: "http preserved", in: "http://example.com", want: "http://example.com"},
		{name: "subpath install preserved", in: "https://example.com/blog/", want: "https://example.com/blog"},
		{name: "empty rejected", in: "   ", wantErr: true},
		{name: "ftp scheme rejected", in: "ftp://example.com", wantErr: true},
		{name: "undotted host rejected", in: "https://localhost", wantErr: true},
		{name: "bare word rejected", in: "myblog", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBaseURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindBadRequest, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
