package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sebaaaap/Dashboard-prueba1/internal/config"
	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/ingestion"
	"github.com/sebaaaap/Dashboard-prueba1/pkg/clients/whatsapp"
)

type fakeSyncer struct {
	calls int
	err   error
}

func (f *fakeSyncer) SyncSheet(context.Context, ingestion.SheetSource) (models.IngestResult, error) {
	f.calls++
	return models.IngestResult{DaysInserted: 1}, f.err
}

type fakeSheet struct{}

func (fakeSheet) ReadOperations(context.Context) ([][]interface{}, error) { return nil, nil }

type fakeDigester struct{ text string }

func (f fakeDigester) AlertDigest(context.Context) (string, error) { return f.text, nil }

type fakeNotifier struct {
	sent []whatsapp.SendTextMessageRequest
	err  error
}

func (f *fakeNotifier) SendTextMessage(_ context.Context, req whatsapp.SendTextMessageRequest) (*whatsapp.SendTextMessageResponse, error) {
	f.sent = append(f.sent, req)
	return &whatsapp.SendTextMessageResponse{}, f.err
}

func testConfig() config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{Timezone: "America/Santiago", AlertsCron: "0 20 * * *"},
		Sheets:    config.SheetsConfig{SyncCron: "0 23 * * *"},
		WhatsApp:  config.WhatsAppConfig{AlertRecipient: "56911111111"},
	}
}

func TestSendAlertDigest(t *testing.T) {
	notifier := &fakeNotifier{}
	s := NewScheduler(testConfig(), Deps{Digester: fakeDigester{text: "Lavadero: 1 alertas"}, Notifier: notifier}, zaptest.NewLogger(t))

	require.NoError(t, s.SendAlertDigest(context.Background()))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "56911111111", notifier.sent[0].To)
	assert.Equal(t, "Lavadero: 1 alertas", notifier.sent[0].Body)

	notifier.err = errors.New("unauthorized")
	assert.ErrorContains(t, s.SendAlertDigest(context.Background()), "unauthorized")
}

func TestRunSheetSync(t *testing.T) {
	syncer := &fakeSyncer{}
	s := NewScheduler(testConfig(), Deps{Syncer: syncer, Sheet: fakeSheet{}}, zaptest.NewLogger(t))

	require.NoError(t, s.RunSheetSync(context.Background()))
	assert.Equal(t, 1, syncer.calls)
}

func TestDisabledJobs(t *testing.T) {
	s := NewScheduler(testConfig(), Deps{}, zaptest.NewLogger(t))

	assert.Error(t, s.RunSheetSync(context.Background()))
	assert.Error(t, s.SendAlertDigest(context.Background()))

	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}

func TestStartRejectsInvalidCron(t *testing.T) {
	cfg := testConfig()
	cfg.Sheets.SyncCron = "every night"
	s := NewScheduler(cfg, Deps{Syncer: &fakeSyncer{}, Sheet: fakeSheet{}}, zaptest.NewLogger(t))

	assert.Error(t, s.Start())
}

func TestStartRegistersEnabledJobs(t *testing.T) {
	s := NewScheduler(testConfig(), Deps{
		Syncer:   &fakeSyncer{},
		Sheet:    fakeSheet{},
		Digester: fakeDigester{},
		Notifier: &fakeNotifier{},
	}, zaptest.NewLogger(t))

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Len(t, s.cron.Entries(), 2)
}
