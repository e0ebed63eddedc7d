package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
)

// parseExtraction turns raw model text into validated transaction fields.
// Sanitization failures surface as parse errors, missing or malformed
// fields as validation errors naming the field.
func parseExtraction(raw string) (*domain.TransactionFields, error) {
	clean := cleanModelJSON(raw)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, apperr.Parse("model output is not a JSON object", err.Error())
	}

	return validateFields(obj)
}

// cleanModelJSON strips Markdown code fences the model may have wrapped
// around its output, then keeps only the outermost JSON object if junk
// remains around it.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)

		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Extra safety: if there's still junk around the JSON object, keep
	// only from the first '{' to the last '}'. A top-level array is left
	// untouched so it fails downstream as the wrong JSON shape instead of
	// being silently rewrapped around its first element.
	if !strings.HasPrefix(s, "[") {
		if start := strings.Index(s, "{"); start != -1 {
			if end := strings.LastIndex(s, "}"); end != -1 && end > start {
				s = strings.TrimSpace(s[start : end+1])
			}
		}
	}

	return s
}

// validateFields checks the parsed object for the exact expected keys.
// description is optional and defaults to empty; everything else is
// required and reported by name when absent.
func validateFields(obj map[string]json.RawMessage) (*domain.TransactionFields, error) {
	fields := &domain.TransactionFields{}

	rawAmount, ok := obj["amount"]
	if !ok {
		return nil, apperr.Validation("model output is missing required field: amount")
	}
	amount, err := decodeAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	fields.Amount = amount

	typ, err := requiredString(obj, "type")
	if err != nil {
		return nil, err
	}
	fields.Type = domain.Type(typ)

	category, err := requiredString(obj, "category")
	if err != nil {
		return nil, err
	}
	fields.Category = category

	date, err := requiredString(obj, "date")
	if err != nil {
		return nil, err
	}
	fields.Date = date

	if rawDesc, ok := obj["description"]; ok {
		var desc string
		if err := json.Unmarshal(rawDesc, &desc); err != nil {
			return nil, apperr.Validation("model output field description is not a string")
		}
		fields.Description = desc
	}

	if err := fields.Validate(); err != nil {
		return nil, err
	}
	return fields, nil
}

// decodeAmount accepts a JSON number or a numeric string and converts it
// to an exact decimal. The ribu/juta shorthand is already resolved by the
// model at this point; only shape is checked here.
func decodeAmount(raw json.RawMessage) (decimal.Decimal, error) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		// Fall back to a quoted numeric string.
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Decimal{}, apperr.Validation("model output field amount is not numeric")
		}
		num = json.Number(s)
	}

	amount, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Decimal{}, apperr.Validation("model output field amount is not numeric")
	}
	return amount, nil
}

func requiredString(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", apperr.Validationf("model output is missing required field: %s", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", apperr.Validationf("model output field %s is not a string", key)
	}
	return s, nil
}
