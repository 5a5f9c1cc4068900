package interp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inert-io/conprog/console"
	"github.com/inert-io/conprog/internal/executor"
	"github.com/inert-io/conprog/interp"
	"github.com/inert-io/conprog/program"
	"github.com/inert-io/conprog/task"
)

func TestRunAsync_LoginAccepted(t *testing.T) {
	script := console.NewScript("me", "hola123")
	in := interp.New(script)
	defer in.Close()

	task := interp.RunAsync(context.Background(), in, loginProgram())

	ok, err := task.Await(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"user:", "password:"}, script.Outputs())
}

func TestRunAsync_DoesNotBlockCaller(t *testing.T) {
	// The console never yields a line, yet RunAsync must return
	// immediately; only Await blocks.
	blocked := make(chan struct{})
	in := interp.New(blockingConsole{unblock: blocked})
	defer in.Close()

	start := time.Now()
	task := interp.RunAsync(context.Background(), in, program.Read())
	require.Less(t, time.Since(start), 100*time.Millisecond)

	_, done := task.TryResult()
	require.False(t, done)

	close(blocked)
	v, err := task.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "released", v)
}

type blockingConsole struct {
	unblock chan struct{}
}

func (blockingConsole) WriteLine(string) error { return nil }

func (c blockingConsole) ReadLine() (string, error) {
	<-c.unblock
	return "released", nil
}

func TestRunAsync_MatchesSynchronousRun(t *testing.T) {
	// Interchangeability: one program value, two strategies, identical
	// results and output traces for the same scripted inputs.
	p := loginProgram()

	syncScript := console.NewScript("me", "hola123")
	syncIn := interp.New(syncScript)
	syncV, syncErr := interp.Run(context.Background(), syncIn, p)

	asyncScript := console.NewScript("me", "hola123")
	asyncIn := interp.New(asyncScript, interp.WithAsyncWorkers(4, 2))
	defer asyncIn.Close()
	asyncV, asyncErr := interp.RunAsync(context.Background(), asyncIn, p).Await(context.Background())

	require.NoError(t, syncErr)
	require.NoError(t, asyncErr)
	require.Equal(t, syncV, asyncV)
	require.Equal(t, syncScript.Outputs(), asyncScript.Outputs())
}

func TestRunAsync_FailureResolvesTaskAndStopsStages(t *testing.T) {
	script := console.NewScript() // first Read fails with end-of-input
	in := interp.New(script)
	defer in.Close()

	p := program.Bind(program.Read(), func(msg string) program.Program[program.Unit] {
		return program.Print("never: " + msg)
	})

	_, err := interp.RunAsync(context.Background(), in, p).Await(context.Background())
	require.ErrorIs(t, err, console.ErrEndOfInput)
	require.Empty(t, script.Outputs())
}

func TestRunAsync_ManyProgramsKeepPerRunOrder(t *testing.T) {
	// Several runs in flight at once; each run's prints must stay in
	// program order on its own console regardless of worker count.
	const runs = 8

	type runCase struct {
		script *console.Script
		task   *task.Task[program.Unit]
	}

	cases := make([]runCase, 0, runs)
	for i := 0; i < runs; i++ {
		script := console.NewScript()
		runIn := interp.New(script, interp.WithAsyncWorkers(4, 2))
		defer runIn.Close()

		p := program.Then(program.Print("first"),
			program.Then(program.Print("second"), program.Print("third")))
		cases = append(cases, runCase{
			script: script,
			task:   interp.RunAsync(context.Background(), runIn, p),
		})
	}

	for _, c := range cases {
		_, err := c.task.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"first", "second", "third"}, c.script.Outputs())
	}
}

func TestRunAsync_AwaitHonoursContext(t *testing.T) {
	blocked := make(chan struct{})
	defer close(blocked)

	in := interp.New(blockingConsole{unblock: blocked})
	defer in.Close()

	task := interp.RunAsync(context.Background(), in, program.Read())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := task.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunAsync_AfterCloseFailsFast(t *testing.T) {
	in := interp.New(console.NewScript("x"))
	in.Close()

	_, err := interp.RunAsync(context.Background(), in, program.Read()).Await(context.Background())
	require.ErrorIs(t, err, executor.ErrStopped)
}

func TestRunAsync_CloseDuringRunResolvesTask(t *testing.T) {
	// The console never yields, so the run is parked inside its first
	// effect when the pool stops; the task must resolve with ErrStopped
	// rather than hang or crash.
	blocked := make(chan struct{})
	defer close(blocked)

	in := interp.New(blockingConsole{unblock: blocked})
	task := interp.RunAsync(context.Background(), in, program.Read())

	time.Sleep(20 * time.Millisecond)
	in.Close()

	_, err := task.Await(context.Background())
	require.ErrorIs(t, err, executor.ErrStopped)
}
