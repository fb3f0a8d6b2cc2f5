package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLogger struct {
	mock.Mock
}

func (l *mockLogger) Debug(args ...interface{}) { l.Called(args...) }
func (l *mockLogger) Info(args ...interface{})  { l.Called(append([]interface{}{"info"}, args...)...) }
func (l *mockLogger) Error(args ...interface{}) { l.Called(args...) }

func TestDebugNilSafe(t *testing.T) {
	var typed *mockLogger
	assert.NotPanics(t, func() {
		Debug(nil, "x")
		Debug(typed, "x")
		Info(typed, "x")
	})
}

func TestDebugAndInfoForward(t *testing.T) {
	l := new(mockLogger)
	l.On("Debug", "hello").Return()
	l.On("Info", "info", "world").Return()

	Debug(l, "hello")
	Info(l, "world")
	l.AssertExpectations(t)
}
