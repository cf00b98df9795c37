package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteCreateRequestImportantCoercion(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"content":"x"}`, false},
		{`{"content":"x","important":null}`, false},
		{`{"content":"x","important":false}`, false},
		{`{"content":"x","important":true}`, true},
		{`{"content":"x","important":0}`, false},
		{`{"content":"x","important":1}`, true},
		{`{"content":"x","important":""}`, false},
		{`{"content":"x","important":"no"}`, true},
		{`{"content":"x","important":[]}`, true},
		{`{"content":"x","important":{}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req NoteCreateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Important.Bool())
			assert.Equal(t, "x", req.Content)
		})
	}
}

func TestNoteDTOJSON(t *testing.T) {
	b, err := json.Marshal(NoteDTO{ID: 4, Content: "test"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"content":"test","important":false}`, string(b))
}
