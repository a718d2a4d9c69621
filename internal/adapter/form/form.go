package form

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
)

// Form drives the Dispatcher through interactive huh forms.
type Form struct {
	dispatcher *Dispatcher
	logger     zerolog.Logger
	accessible bool
	in         io.Reader
	out        io.Writer
}

// Option configures a Form.
type Option func(*Form)

// WithAccessible switches huh to plain prompts for screen readers and dumb terminals.
func WithAccessible(accessible bool) Option {
	return func(f *Form) { f.accessible = accessible }
}

// WithIO sets the streams the form reads from and draws to.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(f *Form) {
		f.in = in
		f.out = out
	}
}

// New creates a new Form.
func New(dispatcher *Dispatcher, logger zerolog.Logger, opts ...Option) *Form {
	f := &Form{
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "form").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run shows the form until the user quits or aborts.
func (f *Form) Run(ctx context.Context) error {
	for {
		var fields Fields

		err := f.run(ctx, huh.NewGroup(
			huh.NewSelect[Action]().
				Title("Banking System").
				Description("Choose an action").
				Options(
					huh.NewOption("Create Account", ActionCreate),
					huh.NewOption("Deposit", ActionDeposit),
					huh.NewOption("Withdraw", ActionWithdraw),
					huh.NewOption("Transfer", ActionTransfer),
					huh.NewOption("Calculate Interest", ActionInterest),
					huh.NewOption("Display Info", ActionDisplay),
					huh.NewOption("Quit", ActionQuit),
				).
				Value(&fields.Action),
		))
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		if fields.Action == ActionQuit {
			return nil
		}

		if err := f.run(ctx, fieldsGroup(&fields)); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			return err
		}

		result := f.dispatcher.Dispatch(ctx, fields)
		f.logger.Debug().
			Str("action", string(fields.Action)).
			Bool("error", result.IsError()).
			Msg("form action handled")

		if err := f.run(ctx, dialog(result)); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
	}
}

func (f *Form) run(ctx context.Context, group *huh.Group) error {
	form := huh.NewForm(group).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(f.accessible)

	if f.in != nil {
		form = form.WithInput(f.in)
	}
	if f.out != nil {
		form = form.WithOutput(f.out)
	}

	return form.RunWithContext(ctx)
}

// fieldsGroup builds the inputs the chosen action needs.
func fieldsGroup(fields *Fields) *huh.Group {
	accountID := huh.NewInput().
		Title("Account Number").
		Value(&fields.AccountID).
		Validate(required("account number"))

	amount := huh.NewInput().
		Title("Amount").
		Value(&fields.Amount).
		Validate(number(false))

	switch fields.Action {
	case ActionCreate:
		return huh.NewGroup(
			accountID,
			huh.NewInput().
				Title("Account Holder").
				Value(&fields.Holder).
				Validate(required("holder name")),
			huh.NewSelect[string]().
				Title("Account Type").
				Options(
					huh.NewOption("Checking", "checking"),
					huh.NewOption("Savings", "savings"),
				).
				Value(&fields.Kind),
			huh.NewInput().
				Title("Initial Balance").
				Value(&fields.Balance).
				Validate(number(true)),
			huh.NewInput().
				Title("Interest Rate").
				Description("Savings only. Leave blank for the default.").
				Value(&fields.InterestRate).
				Validate(number(true)),
		)
	case ActionDeposit, ActionWithdraw:
		return huh.NewGroup(accountID, amount)
	case ActionTransfer:
		return huh.NewGroup(
			accountID.Title("From Account Number"),
			huh.NewInput().
				Title("To Account Number").
				Value(&fields.DestinationID).
				Validate(required("account number")),
			amount,
		)
	default:
		return huh.NewGroup(accountID)
	}
}

// dialog renders a Result as a note, the terminal stand-in for a message box.
func dialog(result Result) *huh.Group {
	return huh.NewGroup(
		huh.NewNote().
			Title(result.Title).
			Description(result.Message).
			Next(true).
			NextLabel("OK"),
	)
}

func required(field string) func(string) error {
	return func(s string) error {
		if len(s) == 0 {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func number(optional bool) func(string) error {
	return func(s string) error {
		_, err := parseNumber(s, optional)
		return err
	}
}
