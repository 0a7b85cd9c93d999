package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

var paramRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ExtractParams returns all {{param}} names from a command string.
func ExtractParams(cmdline string) []string {
	matches := paramRe.FindAllStringSubmatch(cmdline, -1)
	seen := make(map[string]bool)
	var params []string
	for _, m := range matches {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			params = append(params, name)
		}
	}
	return params
}

// SubstituteParams replaces {{param}} with provided values.
func SubstituteParams(cmdline string, values map[string]string) string {
	result := cmdline
	for name, value := range values {
		result = strings.ReplaceAll(result, "{{"+name+"}}", value)
	}
	return result
}

// OutputMsg is sent through the channel for each line of output. The final
// message has Done set; ErrMsg carries the failure, if any.
type OutputMsg struct {
	Line   string
	IsErr  bool
	Done   bool
	ErrMsg string
}

// Run executes a command line and streams its output. Cancel ctx to stop
// the command early; the terminal Done message reports the exit error.
func Run(ctx context.Context, cmdline string, output chan<- OutputMsg) {
	defer close(output)

	c := exec.CommandContext(ctx, "sh", "-c", cmdline)

	stdout, err := c.StdoutPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	stderr, err := c.StderrPipe()
	if err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	if err := c.Start(); err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
		return
	}

	done := make(chan struct{}, 2)

	streamReader := func(r io.Reader, isErr bool) {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			output <- OutputMsg{Line: scanner.Text(), IsErr: isErr}
		}
		done <- struct{}{}
	}

	go streamReader(stdout, false)
	go streamReader(stderr, true)

	<-done
	<-done

	if err := c.Wait(); err != nil {
		output <- OutputMsg{Done: true, ErrMsg: err.Error()}
	} else {
		output <- OutputMsg{Done: true}
	}
}

// DefaultOpenTimeout bounds how long Open waits for a launch to settle.
const DefaultOpenTimeout = 10 * time.Second

// Open launches an editor command and waits for it to exit, up to timeout.
// One shot, no retries: a timeout kills the process and every failure is
// returned to the caller for a notification.
func Open(argv []string, timeout time.Duration) error {
	if len(argv) == 0 {
		return errors.New("empty editor command")
	}
	if timeout <= 0 {
		timeout = DefaultOpenTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	err := c.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s: launch timed out after %s", argv[0], timeout)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}
