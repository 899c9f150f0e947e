package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestErrorWithOpAndPath(t *testing.T) {
	err := New(ErrCodeEmptyComposite, "group has no children").WithOp("bbox").WithPath([]int{2, 0})

	expected := "EMPTY_COMPOSITE: bbox: group has no children (at root[2][0])"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}

	if got := UserMessage(err); got != "bbox: group has no children (at root[2][0])" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestWithPathCopies(t *testing.T) {
	path := []int{1, 2}
	err := New(ErrCodeEmptyComposite, "x").WithPath(path)
	path[0] = 9
	if err.Path[0] != 1 {
		t.Errorf("Path aliased caller slice: %v", err.Path)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRenderFailed, cause, "pdflatex failed")

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeEmptyComposite, "test"),
			code:     ErrCodeEmptyComposite,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeEmptyComposite, "test"),
			code:     ErrCodeDegenerateGeometry,
			expected: false,
		},
		{
			name:     "outer code of wrapped error",
			err:      Wrap(ErrCodeInvalidScene, New(ErrCodeEmptyComposite, "inner"), "outer"),
			code:     ErrCodeInvalidScene,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeInvalidScene, New(ErrCodeEmptyComposite, "inner"), "outer"),
			code:     ErrCodeEmptyComposite,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeUnsupportedShape, "test"), ErrCodeUnsupportedShape},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"with op", New(ErrCodeDegenerateGeometry, "coincident points").WithOp("angle"), "angle: coincident points"},
		{"plain error", errors.New("plain error"), "plain error"},
		{"coded cause", Wrap(ErrCodeEmptyComposite, New(ErrCodeEmptyComposite, "nothing to distribute").WithOp("distribute"), "op 2 (distribute)").WithOp("apply"), "apply: op 2 (distribute): distribute: nothing to distribute"},
		{"plain cause hidden", Wrap(ErrCodeInternal, errors.New("disk"), "write failed"), "write failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		path []int
		want string
	}{
		{nil, "root"},
		{[]int{}, "root"},
		{[]int{3}, "root[3]"},
		{[]int{0, 12, 1}, "root[0][12][1]"},
	}
	for _, tt := range tests {
		if got := FormatPath(tt.path); got != tt.want {
			t.Errorf("FormatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
