package transcribe

import (
	"path/filepath"
	"strings"
)

// statementPrompt asks for the canonical 7-column bank statement CSV.
const statementPrompt = `Extract all transactions from the provided financial document (statement or passbook) into a raw CSV string.

**Output Schema & Headers (7 columns, exact order):**
Date,ChequeNo,Narration,ValueDate,WithdrawalAmount,DepositAmount,ClosingBalance

**Processing Rules:**
- **Combine Multi-line Narration:** Merge multi-line transaction descriptions (like 'Particulars' or 'Narration') into a single field with spaces.
- **Handle Missing Columns:** If a source document has no 'ValueDate', keep the column in the header but leave its data fields empty.
- **Data Cleaning:** Remove all non-numeric characters from amount columns (e.g., currency symbols, ',', 'Cr', 'Dr'). "1,234.56 Cr" must become "1234.56".
- **Zero Values:** Represent empty or zero withdrawals/deposits as 0.00.
- **CRITICAL COMMA RULE:** If any field's text contains a comma, enclose that entire field in double quotes.
- **Exclusions:** Do not include any summary or footer lines (e.g., 'Clear Balance', 'Carried Forward').

**Final Output:**
- Raw CSV text only.
- No explanations, summaries, or markdown code fences.
- Start directly with the header row.
`

// camsPrompt is tuned for CAMS capital-gains reports, which need the
// transaction type derived from the scheme name before extraction.
const camsPrompt = `Your task: Process a CAMS Capital Gains report. Extract all transaction-level data into a single, clean CSV.

**Extraction Rules:**

1. **Determine Transaction_Type by analyzing the Scheme Name:**
   - If the name contains Equity, Cap, Contra, Value, Thematic, Dividend, Focused, or Opportunities -> set as EQUITY_MF.
   - Otherwise, it's a debt fund. Check its Date_of_Purchase:
     - Before 2023-04-01 -> set as DEBT_MF_INDEXED.
     - On or after 2023-04-01 -> set as DEBT_MF_SLAB_RATE.

2. **Map data from the report to the CSV columns:**
   - Scheme Name -> Particulars
   - ISIN -> ISIN_Code
   - Redeemed Units -> Quantity
   - Purchase date -> Date_of_Purchase
   - Redemption date -> Date_of_Transfer
   - Amount (from Redemption line) -> Sale_Consideration
   - (Calculate: Redeemed Units * Unit Cost) -> Actual_Cost_of_Acquisition
   - **CRITICAL:** Market value as on 31/01/2018 -> FMV_on_31012018
   - (Calculate: Sum of Short Term + Long Term gains) -> Abs_Gain_Loss
   - (Calculate: Days between dates) -> Holding_Days

**Final Output:**
- Raw CSV text only.
- No explanations, summaries, or markdown code fences.
- Start directly with the header row.

Transaction_Type,Particulars,ISIN_Code,Quantity,Date_of_Purchase,Date_of_Transfer,Sale_Consideration,Selling_Expenses,Net_Sale_Consideration,Actual_Cost_of_Acquisition,Indexed_Cost,FMV_on_31012018,Abs_Gain_Loss,Holding_Days
`

// generalPrompt handles broker and exchange capital-gains statements
// that are not in the CAMS layout.
const generalPrompt = `Your task is to act as an expert data extractor. Convert all transactions into a single, clean CSV file with no extra text.

**Instructions:**

1. **Classify Transaction_Type based on the instrument type AND its purchase date:**
   - EQUITY_MF: For stocks and all equity mutual funds.
   - DEBT_MF_INDEXED: For debt/liquid funds with a Date_of_Purchase BEFORE 2023-04-01.
   - DEBT_MF_SLAB_RATE: For debt/liquid funds with a Date_of_Purchase ON OR AFTER 2023-04-01.
   - OTHER_NON_EQUITY: For Gold funds, international funds, etc.
   - VDA: For crypto or Virtual Digital Assets.

2. **Extract data into these specific CSV columns.** If a value is missing, leave the field blank.
   - Transaction_Type (from Rule 1)
   - Particulars, ISIN_Code, Quantity, Date_of_Purchase, Date_of_Transfer
   - Sale_Consideration, Selling_Expenses, Net_Sale_Consideration
   - Actual_Cost_of_Acquisition, Indexed_Cost
   - FMV_on_31012018 (**CRITICAL**: Find 'Value/NAV as on 31-01-2018')
   - Abs_Gain_Loss (Find 'Abs.(G/L)')
   - Holding_Days

**Final Output:**
- Raw CSV text only.
- No explanations, summaries, or markdown code fences.
- Start directly with the header row.

Transaction_Type,Particulars,ISIN_Code,Quantity,Date_of_Purchase,Date_of_Transfer,Sale_Consideration,Selling_Expenses,Net_Sale_Consideration,Actual_Cost_of_Acquisition,Indexed_Cost,FMV_on_31012018,Abs_Gain_Loss,Holding_Days
`

// promptFor picks the prompt for a document. CAMS reports are detected
// by filename, since CAMS mails them out with "CAMS" in the name.
func promptFor(doc Document) string {
	switch doc.Kind {
	case KindCapitalGains:
		name := strings.ToLower(filepath.Base(doc.Filename))
		if strings.Contains(name, "cams") {
			return camsPrompt
		}
		return generalPrompt
	default:
		return statementPrompt
	}
}
