// Package console runs the interactive task menu over a reader and writer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/viant/taskflow"
	"github.com/viant/taskflow/model"
)

// errExit ends the session.
var errExit = errors.New("exit")

// Console holds one operator session. The logged in user is the only
// session state.
type Console struct {
	service *taskflow.Service
	in      *bufio.Reader
	out     io.Writer
	user    *model.User
}

// New returns a console reading from stdin and writing to stdout.
func New(service *taskflow.Service) *Console {
	return NewWithIO(service, os.Stdin, os.Stdout)
}

// NewWithIO lets callers override the input/output streams.
func NewWithIO(service *taskflow.Service, in io.Reader, out io.Writer) *Console {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Console{service: service, in: bufio.NewReader(in), out: out}
}

// User returns the logged in user, nil when logged out.
func (c *Console) User() *model.User { return c.user }

// Run shows menus until the operator exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		if c.user == nil {
			err = c.loggedOutMenu(ctx)
		} else {
			err = c.loggedInMenu(ctx)
		}
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

func (c *Console) loggedOutMenu(ctx context.Context) error {
	c.println("\n=== Workflow Automation System ===")
	c.println("1. Login")
	c.println("2. Register")
	c.println("3. Exit")
	choice, err := c.choose()
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return c.login(ctx)
	case 2:
		return c.register(ctx)
	case 3:
		return errExit
	case 0:
		return nil
	default:
		c.println("Error: Invalid option")
		return nil
	}
}

func (c *Console) loggedInMenu(ctx context.Context) error {
	c.printf("\n=== Welcome, %s (%s) ===\n", c.user.Username, c.user.Role)
	c.println("1. Create Task")
	c.println("2. List Tasks")
	c.println("3. Process Task (Approve/Reject)")
	c.println("4. Rollback Task")
	c.println("5. Watch Task")
	c.println("6. Logout")
	choice, err := c.choose()
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return c.createTask(ctx)
	case 2:
		return c.listTasks(ctx)
	case 3:
		return c.processTask(ctx)
	case 4:
		return c.rollbackTask(ctx)
	case 5:
		return c.watchTask(ctx)
	case 6:
		c.user = nil
		c.println("Logged out")
		return nil
	case 0:
		return nil
	default:
		c.println("Error: Invalid option")
		return nil
	}
}

// choose reads a menu option; 0 means the input was not a number and an
// error has already been printed.
func (c *Console) choose() (int, error) {
	text, err := c.ask("Choose option:")
	if err != nil {
		return 0, err
	}
	choice, convErr := strconv.Atoi(text)
	if convErr != nil {
		c.println("Error: Please enter a number")
		return 0, nil
	}
	if choice == 0 {
		c.println("Error: Invalid option")
	}
	return choice, nil
}

func (c *Console) login(ctx context.Context) error {
	username, err := c.ask("Username:")
	if err != nil {
		return err
	}
	password, err := c.ask("Password:")
	if err != nil {
		return err
	}
	user, err := c.service.Login(ctx, username, password)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.user = user
	c.printf("Login successful: %s\n", user.Username)
	return nil
}

func (c *Console) register(ctx context.Context) error {
	username, err := c.ask("Username:")
	if err != nil {
		return err
	}
	password, err := c.ask("Password:")
	if err != nil {
		return err
	}
	role, err := c.ask("Role (Junior/Manager/Senior):")
	if err != nil {
		return err
	}
	user, err := c.service.Register(ctx, username, password, role)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.printf("User registered: %s\n", user.Username)
	return nil
}

func (c *Console) createTask(ctx context.Context) error {
	description, err := c.ask("Task description:")
	if err != nil {
		return err
	}
	text, err := c.ask("Priority (1=Low, 2=Medium, 3=High):")
	if err != nil {
		return err
	}
	priority, convErr := strconv.Atoi(text)
	if convErr != nil {
		c.println("Error: Priority must be a number")
		return nil
	}
	task, err := c.service.CreateTask(ctx, c.user, description, model.Priority(priority))
	if err != nil {
		c.fail(err)
		return nil
	}
	c.printf("Task created: %s\n", task.ID)
	return nil
}

func (c *Console) listTasks(ctx context.Context) error {
	tasks, err := c.service.ListTasks(ctx)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.println("Tasks:")
	for _, task := range tasks {
		c.printf("- ID: %s, Description: %s, Priority: %d, Status: %s\n",
			task.ID, task.Description, task.Priority(), task.Status())
	}
	return nil
}

func (c *Console) processTask(ctx context.Context) error {
	id, err := c.ask("Task ID:")
	if err != nil {
		return err
	}
	if _, err = c.service.Task(ctx, id); err != nil {
		c.fail(err)
		return nil
	}
	text, err := c.ask("Action (1=Approve, 2=Reject):")
	if err != nil {
		return err
	}
	action, convErr := strconv.Atoi(text)
	if convErr != nil {
		c.println("Error: Action must be a number (1 or 2)")
		return nil
	}
	var reason string
	switch action {
	case 1:
	case 2:
		if reason, err = c.ask("Enter rejection reason (optional):"); err != nil {
			return err
		}
	default:
		c.println("Error: Invalid action")
		return nil
	}
	decision, err := c.service.ProcessTask(ctx, c.user, id, action == 1, reason)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.printf("Task %s: %s\n", decision.TaskID, decision.Status)
	return nil
}

func (c *Console) rollbackTask(ctx context.Context) error {
	id, err := c.ask("Task ID:")
	if err != nil {
		return err
	}
	task, err := c.service.RollbackTask(ctx, id)
	if err != nil {
		c.fail(err)
		return nil
	}
	left, err := c.service.History(ctx, task.ID)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.printf("Task %s rolled back to previous state: %s (%d earlier states left)\n", task.ID, task.Status(), left)
	return nil
}

func (c *Console) watchTask(ctx context.Context) error {
	id, err := c.ask("Task ID:")
	if err != nil {
		return err
	}
	task, err := c.service.Watch(ctx, c.user, id)
	if err != nil {
		c.fail(err)
		return nil
	}
	c.printf("Watching task %s\n", task.ID)
	return nil
}

// ask prints prompt and returns the trimmed answer. A final line without a
// newline is still returned; io.EOF is reported only when nothing was read.
func (c *Console) ask(prompt string) (string, error) {
	c.printf("%s ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) fail(err error) {
	c.printf("Error: %v\n", err)
}

func (c *Console) println(text string) {
	fmt.Fprintln(c.out, text)
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
