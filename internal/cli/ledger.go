package cli

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

// Ledger is the YAML document read by `settlectl settle`.
//
//	participants:
//	  - {id: a, name: Alice}
//	  - {name: Bob}            # id defaults to the name
//	expenses:
//	  - description: Dinner
//	    total: 90
//	    payee: a
//	    participants: [a, Bob]
//	    split: proportional    # equal (default), unequal, proportional
//	    shares: {a: 2, Bob: 1}
type Ledger struct {
	Participants []LedgerParticipant `yaml:"participants"`
	Expenses     []LedgerExpense     `yaml:"expenses"`
}

type LedgerParticipant struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type LedgerExpense struct {
	Description  string             `yaml:"description"`
	Total        float64            `yaml:"total"`
	Payee        string             `yaml:"payee"`
	Participants []string           `yaml:"participants"`
	Split        string             `yaml:"split"`
	Amounts      map[string]float64 `yaml:"amounts"`
	Shares       map[string]float64 `yaml:"shares"`
}

// LoadLedger reads a ledger from a file path, or stdin when path is "-".
func LoadLedger(path string, stdin io.Reader) (*Ledger, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var ledger Ledger
	if err := yaml.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("failed to parse ledger: %w", err)
	}
	return &ledger, nil
}

// Resolve converts the ledger into a roster and validated expenses.
func (l *Ledger) Resolve() ([]models.Participant, []models.Expense, error) {
	roster := make([]models.Participant, 0, len(l.Participants))
	seen := make(map[string]bool, len(l.Participants))
	for i, p := range l.Participants {
		id := p.ID
		if id == "" {
			id = p.Name
		}
		if id == "" {
			return nil, nil, fmt.Errorf("participant %d: id or name is required", i+1)
		}
		if seen[id] {
			return nil, nil, fmt.Errorf("participant %d: duplicate id %q", i+1, id)
		}
		seen[id] = true

		name := p.Name
		if name == "" {
			name = id
		}
		roster = append(roster, models.Participant{ID: id, Name: name, Email: models.NormalizeEmail(p.Email)})
	}

	expenses := make([]models.Expense, 0, len(l.Expenses))
	for i, e := range l.Expenses {
		detail, err := e.detail()
		if err != nil {
			return nil, nil, fmt.Errorf("expense %d: %w", i+1, err)
		}
		expense, err := calculator.NewExpense(calculator.ExpenseInput{
			Description:    e.Description,
			TotalAmount:    e.Total,
			PayeeID:        e.Payee,
			ParticipantIDs: e.Participants,
			Detail:         detail,
		}, roster)
		if err != nil {
			return nil, nil, fmt.Errorf("expense %d (%s): %w", i+1, e.Description, err)
		}
		expenses = append(expenses, *expense)
	}
	return roster, expenses, nil
}

func (e LedgerExpense) detail() (models.SplitDetail, error) {
	if e.Split == "" {
		return models.EqualSplit{}, nil
	}
	splitType, err := models.ParseSplitType(e.Split)
	if err != nil {
		return nil, err
	}
	switch splitType {
	case models.SplitUnequal:
		return models.UnequalSplit{Amounts: e.Amounts}, nil
	case models.SplitProportional:
		return models.ProportionalSplit{Shares: e.Shares}, nil
	default:
		return models.EqualSplit{}, nil
	}
}
