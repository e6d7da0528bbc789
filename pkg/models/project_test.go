package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ProjectStatus
		wantErr bool
	}{
		{name: "draft", input: "draft", want: StatusDraft},
		{name: "in progress", input: "in_progress", want: StatusInProgress},
		{name: "delivered", input: "delivered", want: StatusDelivered},
		{name: "archived", input: "archived", want: StatusArchived},
		{name: "unknown", input: "paused", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProjectStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectDecodeKeepsUnknownStatus(t *testing.T) {
	var p Project
	err := json.Unmarshal([]byte(`{"id":"p1","name":"Site","client":"Acme","status":"on_hold","created_at":"2024-01-01T00:00:00Z"}`), &p)
	require.NoError(t, err)
	assert.Equal(t, ProjectStatus("on_hold"), p.Status)
	assert.False(t, p.Status.IsValid())
	assert.Equal(t, 2024, p.CreatedAt.Year())
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name       string
		draft      Draft
		wantFields []string
	}{
		{
			name:  "valid",
			draft: Draft{Name: "Site Refonte", Client: "Acme", Status: StatusDraft},
		},
		{
			name:  "empty status defaults later",
			draft: Draft{Name: "Site Refonte", Client: "Acme"},
		},
		{
			name:       "missing name",
			draft:      Draft{Client: "Acme", Status: StatusDraft},
			wantFields: []string{FieldName},
		},
		{
			name:       "missing name and client",
			draft:      NewDraft(),
			wantFields: []string{FieldClient, FieldName},
		},
		{
			name:       "unknown status",
			draft:      Draft{Name: "Site", Client: "Acme", Status: "paused"},
			wantFields: []string{FieldStatus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantFields, InvalidFields(err))
		})
	}
}

func TestDraftWithDefaults(t *testing.T) {
	assert.Equal(t, StatusDraft, Draft{Name: "a"}.WithDefaults().Status)
	assert.Equal(t, StatusDelivered, Draft{Status: StatusDelivered}.WithDefaults().Status)
	assert.Equal(t, Draft{Status: StatusDraft}, NewDraft())
}

func TestInvalidFieldsOnOtherErrors(t *testing.T) {
	assert.Nil(t, InvalidFields(nil))
	assert.Nil(t, InvalidFields(assert.AnError))
}
