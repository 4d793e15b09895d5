package rssfeeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsFreshData(t *testing.T) {
	tests := []struct {
		topic string
		want  bool
	}{
		{"best crm tools", false},
		{"crm trends 2025", true},
		{"widget cleaning tips", false},
		{"SEO trends 2025", true},
		{"Latest Google update", true},
		{"what happened today", true},
		{"breaking: core update", true},
		{"gardening in 2031", true},
		{"history of 1999 web design", false},
		{"budget for 2040", false},
		{"room 20245", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsFreshData(tt.topic), tt.topic)
	}
}
