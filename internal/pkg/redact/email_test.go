package redact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deliverytracker/internal/pkg/redact"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "should keep two leading characters", in: "john.doe@example.com", want: "jo***@example.com"},
		{name: "should mask a short local part", in: "ab@example.com", want: "***@example.com"},
		{name: "should mask an empty local part", in: "@example.com", want: "***@example.com"},
		{name: "should mask input without at sign", in: "not-an-email", want: "***@***"},
		{name: "should mask input with two at signs", in: "a@b@c", want: "***@***"},
		{name: "should mask empty input", in: "", want: "***@***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redact.Email(tt.in))
		})
	}
}
