package validate

import "testing"

func TestTodo(t *testing.T) {
	tests := []struct {
		name string
		in   TodoInput
		want map[string]string
	}{
		{
			name: "valid",
			in:   TodoInput{Text: "Buy milk", DueDate: "2024-01-15"},
			want: map[string]string{},
		},
		{
			name: "empty text",
			in:   TodoInput{Text: "", DueDate: "2024-01-15"},
			want: map[string]string{"text": "To-Do text is required"},
		},
		{
			name: "bad date",
			in:   TodoInput{Text: "x", DueDate: "15/01/2024"},
			want: map[string]string{"dueDate": "Invalid date format"},
		},
		{
			name: "empty date",
			in:   TodoInput{Text: "x", DueDate: ""},
			want: map[string]string{"dueDate": "Invalid date format"},
		},
		{
			name: "both invalid",
			in:   TodoInput{},
			want: map[string]string{
				"text":    "To-Do text is required",
				"dueDate": "Invalid date format",
			},
		},
		{
			// Only the shape is checked, not the calendar.
			name: "month 13 passes",
			in:   TodoInput{Text: "x", DueDate: "2024-13-40"},
			want: map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Todo(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("field %q: got %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		in         SignupInput
		wantFields []string
	}{
		{
			name:       "valid",
			in:         SignupInput{Name: "Alice", Email: "a@b.com", Password: "secret1"},
			wantFields: nil,
		},
		{
			name:       "missing name",
			in:         SignupInput{Name: "", Email: "a@b.com", Password: "secret1"},
			wantFields: []string{"name"},
		},
		{
			name:       "bad email",
			in:         SignupInput{Name: "Alice", Email: "not-an-email", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			in:         SignupInput{Name: "Alice", Email: "a@b.com", Password: "x"},
			wantFields: []string{"password"},
		},
		{
			name:       "everything wrong",
			in:         SignupInput{},
			wantFields: []string{"name", "email", "password"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Signup(tt.in)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("got %v, want errors on %v", got, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if got[f] == "" {
					t.Errorf("expected a message for field %q, got none", f)
				}
			}
		})
	}
}
