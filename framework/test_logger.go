package framework

import "sync"

// TestLogger receives notifications as tests progress.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestRetried(id TestID, attempt int, debugOutput CapturedOutput)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestRetried(TestID, int, CapturedOutput)   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

// BufferedTestLogger is a TestLogger that records notifications so that they can be
// passed on later, in order, with Replay. It is safe for concurrent use.
type BufferedTestLogger struct {
	calls []func(TestLogger)
	lock  sync.Mutex
}

func (b *BufferedTestLogger) add(call func(TestLogger)) {
	b.lock.Lock()
	b.calls = append(b.calls, call)
	b.lock.Unlock()
}

func (b *BufferedTestLogger) TestStarted(id TestID) {
	b.add(func(l TestLogger) { l.TestStarted(id) })
}

func (b *BufferedTestLogger) TestError(id TestID, err error) {
	b.add(func(l TestLogger) { l.TestError(id, err) })
}

func (b *BufferedTestLogger) TestRetried(id TestID, attempt int, debugOutput CapturedOutput) {
	b.add(func(l TestLogger) { l.TestRetried(id, attempt, debugOutput) })
}

func (b *BufferedTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	b.add(func(l TestLogger) { l.TestFinished(id, failed, debugOutput) })
}

func (b *BufferedTestLogger) TestSkipped(id TestID, reason string) {
	b.add(func(l TestLogger) { l.TestSkipped(id, reason) })
}

// Replay passes every recorded notification to target and clears the buffer.
func (b *BufferedTestLogger) Replay(target TestLogger) {
	b.lock.Lock()
	calls := b.calls
	b.calls = nil
	b.lock.Unlock()
	for _, call := range calls {
		call(target)
	}
}
