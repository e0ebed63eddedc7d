package pipeline

import (
	"strings"
	"time"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
)

// BuildPrompt constructs the extraction instruction for one piece of user
// text. The prompt is fully determined by the text and the supplied
// current date; the clock is injected so tests can pin it.
//
// The shorthand rules ("15 ribu" -> 15000, "2jt" -> 2000000) and the
// relative-date resolution are the model's responsibility under this
// contract; the pipeline only type-checks what comes back.
func BuildPrompt(text string, today time.Time) string {
	date := today.Format(domain.DateLayout)

	var b strings.Builder
	b.WriteString("You are an expert financial assistant specializing in Indonesian Rupiah (" + Currency + "). ")
	b.WriteString("Analyze the following user text and extract the transaction details into a valid JSON object.\n\n")
	b.WriteString("User text: \"" + text + "\"\n\n")

	b.WriteString("Follow these rules strictly:\n")
	b.WriteString("1. The currency is always Indonesian Rupiah (" + Currency + ").\n")
	b.WriteString("2. Determine if the transaction is an 'income' or 'expense'.\n")
	b.WriteString("3. Extract the numerical 'amount'. If the text contains 'k' or 'ribu' after a number, ")
	b.WriteString("interpret it as thousands (e.g., 10k = 10000). If the text contains 'jt' or 'juta', ")
	b.WriteString("interpret it as millions (e.g., 2jt = 2000000).\n")
	b.WriteString("4. If it is an 'expense', classify it into one of the following categories: [")
	b.WriteString(strings.Join(domain.ExpenseCategories, ", "))
	b.WriteString("]. If it is 'income', the category must be \"" + domain.CategoryIncome + "\".\n")
	b.WriteString("5. Create a brief, descriptive 'description' from the text.\n")
	b.WriteString("6. If the text implies a date (e.g., \"kemarin\", \"selasa lalu\"), determine the correct date ")
	b.WriteString("in 'YYYY-MM-DD' format relative to today. If no date is mentioned, use today's date: " + date + ".\n")
	b.WriteString("7. Your final output must be ONLY the JSON object with exactly the fields ")
	b.WriteString("{amount, type, category, description, date}, with no other text or explanations.\n\n")

	b.WriteString("Example 1: User input \"Beli Kopi 15 ribu\"\n")
	b.WriteString("{\n")
	b.WriteString("  \"amount\": 15000,\n")
	b.WriteString("  \"type\": \"expense\",\n")
	b.WriteString("  \"category\": \"Food\",\n")
	b.WriteString("  \"description\": \"Beli Kopi\",\n")
	b.WriteString("  \"date\": \"" + date + "\"\n")
	b.WriteString("}\n\n")

	b.WriteString("Example 2: User input \"Gaji 5jt\"\n")
	b.WriteString("{\n")
	b.WriteString("  \"amount\": 5000000,\n")
	b.WriteString("  \"type\": \"income\",\n")
	b.WriteString("  \"category\": \"" + domain.CategoryIncome + "\",\n")
	b.WriteString("  \"description\": \"Gaji\",\n")
	b.WriteString("  \"date\": \"" + date + "\"\n")
	b.WriteString("}\n")

	return b.String()
}
