package validator_test

import (
	"shareit/shared/failure"
	"shareit/shared/validator"
	"strings"
	"testing"
)

type bookingRequest struct {
	ItemID string `validate:"required,notblank" json:"item_id"`
	Start  string `validate:"required,timestamp" json:"start"`
	End    string `validate:"required,timestamp" json:"end"`
	State  string `validate:"omitempty,oneof=ALL CURRENT PAST FUTURE WAITING REJECTED" json:"state"`
	Size   int    `validate:"gte=0,lte=100" json:"size"`
}

func valid() bookingRequest {
	return bookingRequest{
		ItemID: "i-1",
		Start:  "2030-01-11T10:00:00Z",
		End:    "2030-01-12T10:00:00",
		State:  "ALL",
		Size:   10,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *bookingRequest)
		expectError bool
	}{
		{name: "valid struct", mutate: func(*bookingRequest) {}},
		{name: "missing item", mutate: func(r *bookingRequest) { r.ItemID = "" }, expectError: true},
		{name: "blank item", mutate: func(r *bookingRequest) { r.ItemID = "   " }, expectError: true},
		{name: "malformed start", mutate: func(r *bookingRequest) { r.Start = "tomorrow" }, expectError: true},
		{name: "date only end", mutate: func(r *bookingRequest) { r.End = "2030-01-12" }, expectError: true},
		{name: "unknown state", mutate: func(r *bookingRequest) { r.State = "all" }, expectError: true},
		{name: "empty state", mutate: func(r *bookingRequest) { r.State = "" }},
		{name: "size out of range", mutate: func(r *bookingRequest) { r.Size = 150 }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid()
			tt.mutate(&data)

			err := validator.ValidateStruct(&data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}

			if err != nil && failure.KindOf(err) != failure.KindBadRequest {
				t.Errorf("expected bad request failure, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "rfc3339 timestamp", field: "2030-01-11T10:00:00+03:00", tag: "timestamp"},
		{name: "local timestamp", field: "2030-01-11T10:00:00", tag: "timestamp"},
		{name: "garbage timestamp", field: "11/01/2030", tag: "timestamp", expectError: true},
		{name: "timestamp on non string", field: 42, tag: "timestamp", expectError: true},
		{name: "empty rule on zero value", field: "", tag: "empty"},
		{name: "empty rule on value", field: "x", tag: "empty", expectError: true},
		{name: "valid uuid", field: "7f1d3c4e-9b2a-4c5d-8e6f-0a1b2c3d4e5f", tag: "uuid"},
		{name: "invalid uuid", field: "b-1", tag: "uuid", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"item_id":"i-1","start":"2030-01-11T10:00:00Z","end":"2030-01-12T10:00:00Z"}`,
		},
		{
			name:        "invalid timestamp",
			jsonBody:    `{"item_id":"i-1","start":"soon","end":"2030-01-12T10:00:00Z"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"item_id":"i-1","start":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *bookingRequest)
		want   string
	}{
		{name: "required", mutate: func(r *bookingRequest) { r.ItemID = "" }, want: "ItemID is required"},
		{name: "timestamp", mutate: func(r *bookingRequest) { r.Start = "soon" }, want: "Start must be an ISO-8601 date-time"},
		{name: "oneof", mutate: func(r *bookingRequest) { r.State = "BOGUS" }, want: "State must be one of ALL CURRENT PAST FUTURE WAITING REJECTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid()
			tt.mutate(&data)

			err := validator.ValidateStruct(&data)
			if err == nil {
				t.Fatal("expected validation error")
			}

			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}
