package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Stakenborg/poe2-investments"
	"github.com/Stakenborg/poe2-investments/renderer"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is either the fund manager or an investor of a pooled Path of Exile 2
			asset fund. They are here primarily to understand their position, the fund's
			value, and the market for the items the fund holds.

			Devise a plan of questions to ask each expert and come up with the best
			response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMerchant creates the market expert. It grounds its answers in search.
func NewMerchant() *Expert {
	return &Expert{
		Name: "Merchant",
		Description: `This is an expert Path of Exile 2 merchant,
		very well aware of the item economy, league mechanics, currency exchange
		rates and the latest patch news. Ask the Merchant whenever you need
		recent or grounding information about the game market.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in the Path of Exile 2 economy. You can search and find
			anything related to items, currency markets, league events and patches.
			You leverage Google Search to ground your assertions in a solid truth,
			and you know how to relate the latest news to the user's request.
				`}}},
		},
	}
}

// NewAccountant creates the expert in charge of reading the fund snapshots
// stored under dataDir.
func NewAccountant(dataDir string) *Expert {
	lib := []Function{
		summaryTool(dataDir),
		capTableTool(dataDir),
		historyTool(dataDir),
	}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the fund's books.
		He can report the fund's net asset value, the unit price, every investor's
		position, and any investor's deposit and withdrawal history.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of a pooled game-asset fund's books.
				You know how to use the Tools to extract relevant information about the
				fund and its investors. You are part of a team of experts; yours is
				everything recorded in the fund's books. Pardon approximative language
				and figure out what was meant.

				Use the available tools to get information about
				  - the fund's value and unit price
				  - every investor's position
				  - an investor's transaction history
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func toolError(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func toolOutput(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func loadFund(dataDir string) (*fund.Fund, error) {
	f, err := fund.NewStore(dataDir).Load()
	if err != nil {
		return nil, fmt.Errorf("could not load the fund: %w", err)
	}
	return f, nil
}

func summaryTool(dataDir string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "FundSummary",
			Description: `FundSummary reports the fund's current state: liquid holdings per
			currency, listed value, haircut, net asset value, units outstanding, unit
			price and high-water mark, using the last stored market valuation.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted summary of the fund.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			f, err := loadFund(dataDir)
			if err != nil {
				return toolError(id, "FundSummary", err)
			}
			return toolOutput(id, "FundSummary", renderer.SummaryMarkdown(f))
		},
	}
}

func capTableTool(dataDir string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "CapTable",
			Description: `CapTable lists every investor with their units, current value,
			share of the fund, cumulative deposits and profit, ordered by value.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all investor positions.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			f, err := loadFund(dataDir)
			if err != nil {
				return toolError(id, "CapTable", err)
			}
			return toolOutput(id, "CapTable", renderer.CapTableMarkdown(f))
		},
	}
}

func historyTool(dataDir string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "InvestorHistory",
			Description: `InvestorHistory lists one investor's deposits and withdrawals,
			oldest first, with the unit price each transaction locked, plus any pending
			request.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The investor's name, matched case-insensitively.",
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted transaction history.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["name"].(string)
			if !ok {
				return toolError(id, "InvestorHistory", fmt.Errorf("argument 'name' is not a string but %T", args["name"]))
			}
			f, err := loadFund(dataDir)
			if err != nil {
				return toolError(id, "InvestorHistory", err)
			}
			inv := f.Find(name)
			if inv == nil {
				return toolError(id, "InvestorHistory", fmt.Errorf("no investor named %q", name))
			}
			return toolOutput(id, "InvestorHistory", renderer.HistoryMarkdown(inv))
		},
	}
}
