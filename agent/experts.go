package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/docs"
	"github.com/etnz/finance/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user keeps a personal finance ledger: cash and bank balances, incomes, expenses,
			and money lent to or borrowed from people. Amounts are in the user's currency.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request. Answer in markdown.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert on budgeting and personal finance, grounded
// with Google Search.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a personal finance advisor, aware of budgeting practices, saving
		strategies and current prices. Ask the Advisor for advice or for grounding information.
		The Advisor cannot read the user's ledger.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert in personal finance and budgeting. You leverage Google Search to
			ground your assertions. Keep your advice concrete and relate it to the figures you
			are given.
			`),
		},
	}
}

// NewAccountant returns the expert reading the ledger l. categories colours
// the spending breakdown.
func NewAccountant(l *finance.Ledger, categories config.Categories) *Expert {
	lib := Tools(l, categories)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant, in charge of reading the user's ledger.
		Ask the Accountant about balances, incomes, expenses per category or period,
		and outstanding debts.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are an accountant in charge of the user's personal finance ledger.
			Use the Tools to extract figures: the summary for balances and the spending breakdown,
			the lists for records of a period, and queries for anything more specific.
			Pardon the approximate language of your colleagues and figure out what they meant.
			You never modify the ledger.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the read-only functions on l offered to the Accountant.
func Tools(l *finance.Ledger, categories config.Categories) []Function {
	return []Function{
		summaryTool(l, categories),
		listTool(l),
		queryTool(l),
	}
}

func summaryTool(l *finance.Ledger, categories config.Categories) *Func {
	const name = "Summary"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Summary returns the total, cash and bank balances, the outstanding debts and the expenses per category with their share.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document with the balances, debts and spending breakdown tables.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			d := renderer.NewDashboard(finance.NewSummary(l.State()), l.Formatter(), categories.Color)
			return success(id, name, renderer.RenderSummary(d, renderer.SummaryRenderOptions{}))
		},
	}
}

func listTool(l *finance.Ledger) *Func {
	const name = "List"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "List returns the records of a collection, most recent first, optionally restricted to a period.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"collection": {
						Type:        genai.TypeString,
						Enum:        []string{"incomes", "expenses", "lent", "borrowed"},
						Description: "The collection to list.",
					},
					"period": {
						Type:        genai.TypeString,
						Enum:        []string{"day", "week", "month", "quarter", "year"},
						Description: "Only list records of this period. All records are listed when omitted.",
					},
					"date": {
						Type: genai.TypeString,
						Description: `A date within the period. Today is the default.
						It uses a flexible date format based on YYYY-MM-DD:

						` + must(docs.GetTopic("dates")),
					},
					"all": {
						Type:        genai.TypeBoolean,
						Description: "Include repaid debts, only outstanding ones are listed otherwise.",
					},
				},
				Required: []string{"collection"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the records, with their id, date, amount and details.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			list, err := listRecords(l, args)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.RenderList(list))
		},
	}
}

func listRecords(l *finance.Ledger, args map[string]any) (*renderer.List, error) {
	coll, err := stringArg(args, "collection", "")
	if err != nil {
		return nil, err
	}
	c, err := finance.ParseCollection(coll)
	if err != nil {
		return nil, err
	}
	all, err := boolArg(args, "all")
	if err != nil {
		return nil, err
	}
	filter := finance.Filter{All: all}

	p, err := stringArg(args, "period", "")
	if err != nil {
		return nil, err
	}
	if p != "" {
		period, err := date.ParsePeriod(p)
		if err != nil {
			return nil, err
		}
		on, err := parseDate(l, args)
		if err != nil {
			return nil, err
		}
		filter.Range = period.Range(on)
	}

	s, f := l.State(), l.Formatter()
	var res *renderer.List
	switch c {
	case finance.Incomes:
		res = renderer.IncomeList(s.IncomeList(filter), f)
	case finance.Expenses:
		res = renderer.ExpenseList(s.ExpenseList(filter), f)
	default:
		res = renderer.DebtList(c, s.DebtList(c, filter), f)
	}
	if p != "" {
		res.Subtitle = fmt.Sprintf("%s %s", filter.Range.Name(), filter.Range.Identifier())
	}
	return res, nil
}

func queryTool(l *finance.Ledger) *Func {
	const name = "Query"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Query evaluates a JSONPath expression on the ledger and returns the result as json.
			The ledger is a json object with keys "cashBalance", "bankBalance" and the lists
			"incomes" (id, amount, date, source, remark, sourceType), "expenses" (id, amount, date,
			category, location, remark, sourceType), "lent" and "borrowed" (id, amount, date, name,
			remark, status). sourceType is "cash" or "bank", status is "outstanding" or "repaid".`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"path": {
						Type:        genai.TypeString,
						Description: `The JSONPath expression, e.g. $.expenses[?(@.category == "Grocery")].amount`,
					},
				},
				Required: []string{"path"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The json encoded result.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			path, err := stringArg(args, "path", "")
			if err != nil {
				return failure(id, name, err)
			}
			val, err := finance.Query(l.State(), path)
			if err != nil {
				return failure(id, name, err)
			}
			out, err := json.Marshal(val)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, string(out))
		},
	}
}

func parseDate(l *finance.Ledger, args map[string]any) (date.Date, error) {
	s, err := stringArg(args, "date", "")
	if err != nil || s == "" {
		return l.Today(), err
	}
	on, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the format date\n\n%s ", s, must(docs.GetTopic("dates")))
	}
	return on, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
