package resolve_eligibility

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubClient struct {
	facts *domain.EligibilityFacts
	err   error
	calls int
}

func (s *stubClient) FetchUserSessionContext(_ context.Context, _, _ string, _ int) (*domain.EligibilityFacts, error) {
	s.calls++
	return s.facts, s.err
}

func TestExecute_EmptyUserSkipsNetwork(t *testing.T) {
	client := &stubClient{}
	uc := NewUseCase(client, nopLogger{})

	facts, err := uc.Execute(context.Background(), &Request{ChargingStationID: "cs-1", ConnectorID: 1})

	require.NoError(t, err)
	assert.Nil(t, facts)
	assert.Equal(t, 0, client.calls)
}

func TestExecute_ReturnsActiveTagAndCodes(t *testing.T) {
	client := &stubClient{facts: &domain.EligibilityFacts{
		ActiveTag:  &domain.Tag{ID: "tag-1", VisualID: "V-1", UserID: "u1", Active: true},
		ErrorCodes: []domain.ErrorCode{domain.ErrorCodeBillingNoPaymentMethod},
	}}
	uc := NewUseCase(client, nopLogger{})

	facts, err := uc.Execute(context.Background(), &Request{UserID: "u1", ChargingStationID: "cs-1", ConnectorID: 1})

	require.NoError(t, err)
	require.NotNil(t, facts.ActiveTag)
	assert.Equal(t, "tag-1", facts.ActiveTag.ID)
	assert.Equal(t, domain.ErrorCodeBillingNoPaymentMethod, facts.FirstErrorCode())

	// результат не разделяет память с ответом клиента
	client.facts.ErrorCodes[0] = "OTHER"
	assert.Equal(t, domain.ErrorCodeBillingNoPaymentMethod, facts.FirstErrorCode())
}

func TestExecute_NilFactsFromBackend(t *testing.T) {
	uc := NewUseCase(&stubClient{}, nopLogger{})

	facts, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	require.NoError(t, err)
	require.NotNil(t, facts)
	assert.Nil(t, facts.ActiveTag)
	assert.False(t, facts.HasErrors())
}

func TestExecute_TransportErrorIsSurfaced(t *testing.T) {
	cause := errors.New("connection refused")
	uc := NewUseCase(&stubClient{err: cause}, nopLogger{})

	facts, err := uc.Execute(context.Background(), &Request{UserID: "u1"})

	assert.Nil(t, facts)
	assert.ErrorIs(t, err, ErrResolutionFailed)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestExecute_IsRepeatable(t *testing.T) {
	client := &stubClient{facts: &domain.EligibilityFacts{}}
	uc := NewUseCase(client, nopLogger{})
	req := &Request{UserID: "u1", ChargingStationID: "cs-1", ConnectorID: 2}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, client.calls)
}
