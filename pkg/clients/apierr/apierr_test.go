package apierr_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avolkov/marketsync/pkg/clients/apierr"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyStatus(t *testing.T) {
	err := fmt.Errorf("update stocks: %w", &apierr.StatusError{StatusCode: 400, Body: "bad request"})
	assert.Equal(t, apierr.KindStatus, apierr.Classify(err))
}

func TestClassifyTimeout(t *testing.T) {
	assert.Equal(t, apierr.KindTimeout, apierr.Classify(context.DeadlineExceeded))
	assert.Equal(t, apierr.KindTimeout, apierr.Classify(fmt.Errorf("list offers: %w", timeoutError{})))
}

func TestClassifyConnection(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	assert.Equal(t, apierr.KindConnection, apierr.Classify(fmt.Errorf("fetch feed: %w", opErr)))
}

func TestClassifyOther(t *testing.T) {
	assert.Equal(t, apierr.KindOther, apierr.Classify(errors.New("boom")))
	assert.Equal(t, apierr.KindOther, apierr.Classify(nil))
}

func TestStatusErrorMessage(t *testing.T) {
	err := &apierr.StatusError{StatusCode: 403, Body: `{"error":"forbidden"}`}
	assert.Equal(t, `unexpected status 403: {"error":"forbidden"}`, err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "timeout", apierr.KindTimeout.String())
	assert.Equal(t, "connection", apierr.KindConnection.String())
	assert.Equal(t, "status", apierr.KindStatus.String())
	assert.Equal(t, "other", apierr.KindOther.String())
}
