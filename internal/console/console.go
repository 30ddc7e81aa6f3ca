// Package console implements the interactive prompt-driven front end. It
// collects raw input, recovers locally from format and range errors by
// re-prompting, and drives the underwriting session one round at a time.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-underwriter/internal/underwriting"
	"github.com/iwvelando/loan-underwriter/pkg/format"
	"github.com/iwvelando/loan-underwriter/pkg/validation"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// App holds the collaborators for one console run. Input and output are
// injected so tests can script a full negotiation.
type App struct {
	logger  *zap.Logger
	catalog *underwriting.Catalog
	policy  underwriting.Policy
	sink    underwriting.RecordSink
	in      *bufio.Scanner
	out     io.Writer
	printer *message.Printer
}

// NewApp constructs the console front end.
func NewApp(logger *zap.Logger, catalog *underwriting.Catalog, policy underwriting.Policy,
	sink underwriting.RecordSink, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		logger:  logger,
		catalog: catalog,
		policy:  policy,
		sink:    sink,
		in:      bufio.NewScanner(in),
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

// Run executes the outer application loop until the user declines to
// process another loan or input ends.
func (a *App) Run() error {
	fmt.Fprintln(a.out, "Welcome to the Bank Loan Management System!")

	for {
		if err := a.processLoan(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		again, err := a.promptYesNo("\nProcess another loan? (yes/no): ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !again {
			fmt.Fprintln(a.out, "\nThank you for using the Bank Loan Management System. Goodbye!")
			return nil
		}
	}
}

// processLoan handles one full session: input collection, negotiation
// rounds, final summary, and persistence.
func (a *App) processLoan() error {
	category, err := a.promptCategory()
	if err != nil {
		return err
	}

	principal, err := a.promptAmount(fmt.Sprintf("Enter the loan amount for the %s: $", category.Name))
	if err != nil {
		return err
	}
	income, err := a.promptAmount("Enter your total monthly income: $")
	if err != nil {
		return err
	}
	term, err := a.promptTerm(category.MaxTermYears)
	if err != nil {
		return err
	}

	session, err := underwriting.NewSession(a.logger, category, a.policy, underwriting.Input{
		Principal:     principal,
		MonthlyIncome: income,
		TermYears:     term,
	})
	if err != nil {
		return fmt.Errorf("failed to open underwriting session: %w", err)
	}

	outcome, err := a.negotiate(session)
	if err != nil {
		return err
	}
	if !outcome.Approved {
		fmt.Fprintln(a.out, "\nLoan application canceled. The record was not saved.")
		return nil
	}

	a.printSummary(outcome)

	finalize, err := a.promptYesNo("Do you want to finalize this loan? (yes/no): ")
	if err != nil {
		return err
	}
	if !finalize {
		fmt.Fprintln(a.out, "\nLoan application canceled. The record was not saved.")
		return nil
	}

	return a.saveRecord(outcome)
}

// negotiate loops evaluation rounds until the configuration is affordable
// or the user cancels. The loop is borrower-driven; no round cap applies
// here.
func (a *App) negotiate(session *underwriting.Session) (underwriting.Outcome, error) {
	category := session.Category()

	for {
		round, err := session.Evaluate()
		if err != nil {
			return underwriting.Outcome{}, err
		}

		fmt.Fprintln(a.out, "\n--- Calculating Your Loan ---")
		a.printer.Fprintf(a.out, "Monthly Payment: $%.2f\n", round.Quote.MonthlyPayment)
		a.printer.Fprintf(a.out, "Your maximum allowed monthly payment (%.0f%% of income): $%.2f\n",
			a.policy.DebtRatioLimit*100, round.MaxAllowedPayment)

		if round.Affordable {
			fmt.Fprintln(a.out, "\nCongratulations! Your monthly payment is within the allowed limit.")
			return session.Approve()
		}

		a.printer.Fprintf(a.out, "\nWarning: Your monthly payment exceeds %.0f%% of your income.\n",
			a.policy.DebtRatioLimit*100)

		if round.CanExtendTerm {
			fmt.Fprintf(a.out, "You can try to lower your payment by extending the term (current: %d, max: %d).\n",
				round.TermYears, category.MaxTermYears)
			choice, err := a.promptLine("Choose an option: (1) Adjust Term, (2) Change Loan Amount, (3) Cancel Loan: ")
			if err != nil {
				return underwriting.Outcome{}, err
			}
			switch strings.TrimSpace(choice) {
			case "1":
				term, err := a.promptTerm(category.MaxTermYears)
				if err != nil {
					return underwriting.Outcome{}, err
				}
				if err := session.AdjustTerm(term); err != nil {
					return underwriting.Outcome{}, err
				}
			case "2":
				if err := a.adjustPrincipal(session); err != nil {
					return underwriting.Outcome{}, err
				}
			default:
				return session.Cancel(), nil
			}
		} else {
			fmt.Fprintf(a.out, "You have reached the maximum term of %d years for this loan.\n",
				category.MaxTermYears)
			choice, err := a.promptLine("Choose an option: (1) Change Loan Amount, (2) Cancel Loan: ")
			if err != nil {
				return underwriting.Outcome{}, err
			}
			if strings.TrimSpace(choice) == "1" {
				if err := a.adjustPrincipal(session); err != nil {
					return underwriting.Outcome{}, err
				}
			} else {
				return session.Cancel(), nil
			}
		}
	}
}

func (a *App) adjustPrincipal(session *underwriting.Session) error {
	principal, err := a.promptAmount("Enter the new loan amount: $")
	if err != nil {
		return err
	}
	return session.AdjustPrincipal(principal)
}

func (a *App) printSummary(outcome underwriting.Outcome) {
	fmt.Fprintln(a.out, "\n--- Final Loan Summary ---")
	fmt.Fprintf(a.out, "%-22s %s\n", "Loan Type:", outcome.Category.Name)
	a.printer.Fprintf(a.out, "%-22s $%.2f\n", "Principal Amount:", outcome.Principal)
	fmt.Fprintf(a.out, "%-22s %s\n", "Annual Interest Rate:", format.Percent(outcome.Category.AnnualRate))
	fmt.Fprintf(a.out, "%-22s %d years\n", "Loan Term:", outcome.TermYears)
	fmt.Fprintln(a.out, strings.Repeat("-", 35))
	a.printer.Fprintf(a.out, "%-22s $%.2f\n", "Monthly Payment:", outcome.Quote.MonthlyPayment)
	a.printer.Fprintf(a.out, "%-22s $%.2f\n", "Total Interest Paid:", outcome.Quote.TotalInterest)
	fmt.Fprintln(a.out, strings.Repeat("-", 35))
}

// saveRecord appends the finalized record, offering a retry on persistence
// failure; the approved outcome stays valid until the user abandons it.
func (a *App) saveRecord(outcome underwriting.Outcome) error {
	record, err := underwriting.NewLoanRecord(outcome)
	if err != nil {
		return err
	}

	for {
		if err := a.sink.Append(record); err != nil {
			a.logger.Error("failed to save loan record",
				zap.String("op", "console.saveRecord"),
				zap.Error(err),
			)
			fmt.Fprintf(a.out, "Error: could not save the loan record: %v\n", err)

			retry, promptErr := a.promptYesNo("Retry saving the record? (yes/no): ")
			if promptErr != nil {
				return promptErr
			}
			if retry {
				continue
			}
			fmt.Fprintln(a.out, "The approved loan was not saved.")
			return nil
		}

		fmt.Fprintln(a.out, "Loan record successfully saved.")
		return nil
	}
}

// promptCategory displays the numbered category menu and re-prompts until
// a valid selection is made.
func (a *App) promptCategory() (underwriting.Category, error) {
	categories := a.catalog.Categories()
	for {
		fmt.Fprintln(a.out, "\n--- Select a Loan Type ---")
		for i, category := range categories {
			fmt.Fprintf(a.out, "%d: %s\n", i+1, category.Name)
		}

		choice, err := a.promptLine("Enter the number for your desired loan type: ")
		if err != nil {
			return underwriting.Category{}, err
		}
		for i, category := range categories {
			if strings.TrimSpace(choice) == fmt.Sprintf("%d", i+1) {
				return category, nil
			}
		}
		fmt.Fprintln(a.out, "Invalid choice. Please select a valid number from the list.")
	}
}

func (a *App) promptAmount(prompt string) (float64, error) {
	for {
		raw, err := a.promptLine(prompt)
		if err != nil {
			return 0, err
		}
		value, parseErr := validation.ParsePositiveAmount(raw)
		if parseErr != nil {
			a.reportInputError(parseErr, "Please enter a positive number.")
			continue
		}
		return value, nil
	}
}

func (a *App) promptTerm(maxTermYears int) (int, error) {
	for {
		raw, err := a.promptLine(fmt.Sprintf("Enter the loan term in years (1 - %d years): ", maxTermYears))
		if err != nil {
			return 0, err
		}
		term, parseErr := validation.ParseTermYears(raw, maxTermYears)
		if parseErr != nil {
			a.reportInputError(parseErr, fmt.Sprintf("Please enter a value between 1 and %d.", maxTermYears))
			continue
		}
		return term, nil
	}
}

func (a *App) promptYesNo(prompt string) (bool, error) {
	answer, err := a.promptLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "yes", nil
}

func (a *App) promptLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return a.in.Text(), nil
}

func (a *App) reportInputError(err error, hint string) {
	fmt.Fprintf(a.out, "Invalid input: %v. %s\n", err, hint)
}
