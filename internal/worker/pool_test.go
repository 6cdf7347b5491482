package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	calls int
	err   error
}

func (h *stubHandler) Process(_ context.Context, _ json.RawMessage) error {
	h.calls++
	return h.err
}

type pushed struct {
	key  string
	data []byte
}

// newTestPool builds a pool whose LPUSH is captured in memory.
func newTestPool(handlers map[string]Handler) (*Pool, *[]pushed) {
	var out []pushed
	p := newPool(nil, handlers)
	p.push = func(_ context.Context, key string, data []byte) error {
		out = append(out, pushed{key: key, data: data})
		return nil
	}
	return p, &out
}

func encodeJob(t *testing.T, job Job) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessJob_Success(t *testing.T) {
	h := &stubHandler{}
	p, out := newTestPool(map[string]Handler{JobReporteCorte: h})

	p.processJob(context.Background(), QueueReporteCorte, encodeJob(t, Job{Type: JobReporteCorte, Payload: json.RawMessage(`{}`)}))

	assert.Equal(t, 1, h.calls)
	assert.Empty(t, *out)
}

func TestProcessJob_RetryThenDLQ(t *testing.T) {
	h := &stubHandler{err: errors.New("smtp timeout")}
	p, out := newTestPool(map[string]Handler{JobReporteCorte: h})
	ctx := context.Background()

	raw := encodeJob(t, Job{Type: JobReporteCorte, Payload: json.RawMessage(`{"corte_id":"x"}`)})
	for i := 1; i < MaxIntentos; i++ {
		p.processJob(ctx, QueueReporteCorte, raw)
		require.Len(t, *out, i)
		last := (*out)[i-1]
		assert.Equal(t, QueueReporteCorte, last.key, "transient failures go back to the queue")

		var job Job
		require.NoError(t, json.Unmarshal(last.data, &job))
		assert.Equal(t, i, job.Attempts)
		raw = last.data
	}

	p.processJob(ctx, QueueReporteCorte, raw)
	require.Len(t, *out, MaxIntentos)
	last := (*out)[MaxIntentos-1]
	assert.Equal(t, DLQPrefix+QueueReporteCorte, last.key)

	var entry DLQEntry
	require.NoError(t, json.Unmarshal(last.data, &entry))
	assert.Equal(t, MaxIntentos, entry.Attempts)
	assert.Equal(t, "smtp timeout", entry.Reason)
	assert.Equal(t, QueueReporteCorte, entry.OriginalQueue)
	assert.JSONEq(t, `{"corte_id":"x"}`, string(entry.Payload))
	assert.Equal(t, MaxIntentos, h.calls)
}

func TestProcessJob_PermanenteVaDirectoADLQ(t *testing.T) {
	h := &stubHandler{err: ErrPermanente}
	p, out := newTestPool(map[string]Handler{JobReporteCorte: h})

	p.processJob(context.Background(), QueueReporteCorte, encodeJob(t, Job{Type: JobReporteCorte}))

	require.Len(t, *out, 1)
	assert.Equal(t, DLQPrefix+QueueReporteCorte, (*out)[0].key)
	assert.Equal(t, 1, h.calls)
}

func TestProcessJob_TipoDesconocido(t *testing.T) {
	p, out := newTestPool(map[string]Handler{})

	p.processJob(context.Background(), QueueReporteCorte, encodeJob(t, Job{Type: "otro"}))

	require.Len(t, *out, 1)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal((*out)[0].data, &entry))
	assert.Equal(t, "otro", entry.JobType)
	assert.Equal(t, 0, entry.Attempts)
}

func TestProcessJob_JSONInvalido(t *testing.T) {
	p, out := newTestPool(map[string]Handler{})
	p.processJob(context.Background(), QueueReporteCorte, []byte("{no es json"))
	assert.Empty(t, *out, "undecodable jobs are dropped and logged")
}

func TestRun_BackoffCuandoRedisFalla(t *testing.T) {
	p, _ := newTestPool(nil)
	p.backoff = 50 * time.Millisecond
	var llamadas atomic.Int32
	p.pop = func(_ context.Context, _ ...string) ([]string, error) {
		llamadas.Add(1)
		return nil, errors.New("dial tcp 127.0.0.1:6379: connection refused")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.wg.Add(1)
	go p.run(ctx, 0)
	time.Sleep(120 * time.Millisecond)
	cancel()
	p.Wait()

	n := llamadas.Load()
	assert.GreaterOrEqual(t, n, int32(1))
	assert.LessOrEqual(t, n, int32(4), "failed BRPOP waits before retrying")
}

func TestRun_ColaVaciaYJob(t *testing.T) {
	h := &stubHandler{}
	p, _ := newTestPool(map[string]Handler{JobReporteCorte: h})
	ctx, cancel := context.WithCancel(context.Background())

	var llamadas atomic.Int32
	job := string(encodeJob(t, Job{Type: JobReporteCorte, Payload: json.RawMessage(`{}`)}))
	p.pop = func(_ context.Context, _ ...string) ([]string, error) {
		switch llamadas.Add(1) {
		case 1:
			return nil, redis.Nil
		case 2:
			return []string{QueueReporteCorte, job}, nil
		default:
			cancel()
			return nil, context.Canceled
		}
	}

	p.wg.Add(1)
	go p.run(ctx, 0)
	p.Wait()

	assert.Equal(t, 1, h.calls)
	assert.Equal(t, int32(3), llamadas.Load())
}
