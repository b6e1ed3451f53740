package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsight/config"
	"capsight/internal/appraisal"
	"capsight/internal/models"
)

func fptr(v float64) *float64 { return &v }

func testEngine() *appraisal.Engine {
	cfg := &config.Config{}
	cfg.Financing.InterestRate = 0.0675
	cfg.Financing.AmortYears = 30
	cfg.Financing.MinDSCR = 1.20
	cfg.Financing.MaxLTV = 0.75
	cfg.Income.VacancyRate = 0.05
	cfg.Income.OpexRatio = 0.35
	cfg.Income.DownsideRentDrop = 0.10

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return appraisal.NewEngine(cfg, nil, logger)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func simpleInput(address string) *models.AppraisalInput {
	return &models.AppraisalInput{
		Subject: &models.SubjectProperty{
			Address:       address,
			PurchasePrice: fptr(450000),
		},
		MarketRent: fptr(2200),
	}
}

func TestRunPreservesInputOrder(t *testing.T) {
	runner := NewRunner(testEngine(), 3, quietLogger())

	inputs := make([]*models.AppraisalInput, 8)
	for i := range inputs {
		inputs[i] = simpleInput(fmt.Sprintf("%d Harbor Rd", i))
	}

	outcomes, err := runner.Run(context.Background(), inputs)
	require.NoError(t, err)

	require.Len(t, outcomes, 8)
	for i, out := range outcomes {
		assert.Equal(t, i, out.Index)
		require.NoError(t, out.Err)
		require.NotNil(t, out.Report)
		assert.Equal(t, inputs[i].Subject.Address, out.Report.Subject.Address)
	}
}

func TestRunCapturesPerItemErrors(t *testing.T) {
	runner := NewRunner(testEngine(), 2, quietLogger())

	inputs := []*models.AppraisalInput{
		simpleInput("1 Main St"),
		{}, // no subject
		simpleInput("3 Main St"),
	}

	outcomes, err := runner.Run(context.Background(), inputs)
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.NotNil(t, outcomes[0].Report)

	assert.Nil(t, outcomes[1].Report)
	assert.ErrorIs(t, outcomes[1].Err, appraisal.ErrMissingSubject)

	assert.NoError(t, outcomes[2].Err)
	assert.NotNil(t, outcomes[2].Report)
}

func TestRunEmptyBatch(t *testing.T) {
	runner := NewRunner(testEngine(), 4, quietLogger())

	outcomes, err := runner.Run(context.Background(), nil)
	assert.Nil(t, outcomes)
	assert.ErrorIs(t, err, ErrNoUsableInput)
}

func TestRunCancelledContext(t *testing.T) {
	runner := NewRunner(testEngine(), 2, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []*models.AppraisalInput{
		simpleInput("1 Main St"),
		simpleInput("2 Main St"),
	}
	outcomes, err := runner.Run(ctx, inputs)
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	for i, out := range outcomes {
		assert.Equal(t, i, out.Index)
		assert.Nil(t, out.Report)
		assert.ErrorIs(t, out.Err, context.Canceled)
	}
}

func TestNewRunnerClampsWorkerCount(t *testing.T) {
	runner := NewRunner(testEngine(), 0, quietLogger())

	outcomes, err := runner.Run(context.Background(), []*models.AppraisalInput{
		simpleInput("1 Main St"),
	})
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
	assert.NotNil(t, outcomes[0].Report)
}
