// Package export streams annotated rows into BigQuery for later
// analysis. Export is optional: documents are fully processed to Excel
// regardless, and an export failure never fails the document.
package export

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/statement-reconciler/internal/capitalgains"
	"github.com/dvloznov/statement-reconciler/internal/ledger"
)

const (
	statementsTable = "statement_rows"
	disposalsTable  = "capital_gains_rows"
)

// StatementRow is one annotated bank statement row as stored in
// BigQuery.
type StatementRow struct {
	DocumentID       string             `bigquery:"document_id"`
	RowNo            int64              `bigquery:"row_no"`
	TransactionDate  civil.Date         `bigquery:"transaction_date"`
	ChequeRef        string             `bigquery:"cheque_ref"`
	Narration        string             `bigquery:"narration"`
	Withdrawal       *big.Rat           `bigquery:"withdrawal"`
	Deposit          *big.Rat           `bigquery:"deposit"`
	ClosingBalance   *big.Rat           `bigquery:"closing_balance"` // nil when missing
	ValidationStatus string             `bigquery:"validation_status"`
	InsertedTS       time.Time          `bigquery:"inserted_ts"`
	Extra            bigquery.NullJSON  `bigquery:"extra"`
}

// DisposalRow is one computed capital-gains row as stored in BigQuery.
type DisposalRow struct {
	DocumentID    string            `bigquery:"document_id"`
	RowNo         int64             `bigquery:"row_no"`
	Category      string            `bigquery:"category"`
	Particulars   string            `bigquery:"particulars"`
	ISIN          string            `bigquery:"isin"`
	PurchaseDate  bigquery.NullDate `bigquery:"purchase_date"`
	TransferDate  bigquery.NullDate `bigquery:"transfer_date"`
	HoldingDays   int64             `bigquery:"holding_days"`
	NetSale       *big.Rat          `bigquery:"net_sale_consideration"`
	ActualCost    *big.Rat          `bigquery:"actual_cost"`
	ShortTermGain *big.Rat          `bigquery:"short_term_gain"`
	LongTermGain  *big.Rat          `bigquery:"long_term_gain"`
	VDAIncome     *big.Rat          `bigquery:"vda_income"`
	InsertedTS    time.Time         `bigquery:"inserted_ts"`
}

// Exporter streams rows into a BigQuery dataset.
type Exporter struct {
	projectID string
	datasetID string
}

// NewExporter creates an exporter targeting project.dataset.
func NewExporter(projectID, datasetID string) *Exporter {
	return &Exporter{projectID: projectID, datasetID: datasetID}
}

// ExportStatement inserts the annotated statement rows.
func (e *Exporter) ExportStatement(ctx context.Context, documentID string, res ledger.Result) error {
	if len(res.Rows) == 0 {
		return nil
	}

	client, err := bigquery.NewClient(ctx, e.projectID)
	if err != nil {
		return fmt.Errorf("ExportStatement: bigquery client: %w", err)
	}
	defer client.Close()

	now := time.Now()
	rows := make([]*StatementRow, 0, len(res.Rows))
	for i, tx := range res.Rows {
		row := &StatementRow{
			DocumentID:       documentID,
			RowNo:            int64(i),
			TransactionDate:  tx.Date,
			ChequeRef:        tx.ChequeRef,
			Narration:        tx.Narration,
			Withdrawal:       tx.Withdrawal.Rat(),
			Deposit:          tx.Deposit.Rat(),
			ValidationStatus: tx.Status.String(),
			InsertedTS:       now,
			Extra:            bigquery.NullJSON{Valid: false},
		}
		if tx.ClosingBalance.Valid {
			row.ClosingBalance = tx.ClosingBalance.Decimal.Rat()
		}
		if res.Document != nil {
			row.ValidationStatus = res.Document.String()
		}
		rows = append(rows, row)
	}

	inserter := client.DatasetInProject(e.projectID, e.datasetID).Table(statementsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("ExportStatement: inserting rows: %w", err)
	}
	return nil
}

// ExportCapitalGains inserts the computed disposal rows. disposals and
// comps are parallel slices.
func (e *Exporter) ExportCapitalGains(ctx context.Context, documentID string, disposals []capitalgains.Disposal, comps []capitalgains.Computation) error {
	if len(disposals) == 0 {
		return nil
	}
	if len(disposals) != len(comps) {
		return fmt.Errorf("ExportCapitalGains: %d disposals but %d computations", len(disposals), len(comps))
	}

	client, err := bigquery.NewClient(ctx, e.projectID)
	if err != nil {
		return fmt.Errorf("ExportCapitalGains: bigquery client: %w", err)
	}
	defer client.Close()

	now := time.Now()
	rows := make([]*DisposalRow, 0, len(disposals))
	for i, d := range disposals {
		c := comps[i]
		row := &DisposalRow{
			DocumentID:    documentID,
			RowNo:         int64(i),
			Category:      c.Category.String(),
			Particulars:   d.Particulars,
			ISIN:          d.ISIN,
			HoldingDays:   int64(c.HoldingDays),
			NetSale:       d.NetSale.Rat(),
			ActualCost:    d.ActualCost.Rat(),
			ShortTermGain: c.ShortTermGain.Rat(),
			LongTermGain:  c.LongTermGain.Rat(),
			VDAIncome:     c.VDAIncome.Rat(),
			InsertedTS:    now,
		}
		if d.HasPurchaseDate {
			row.PurchaseDate = bigquery.NullDate{Date: d.PurchaseDate, Valid: true}
		}
		if d.HasTransferDate {
			row.TransferDate = bigquery.NullDate{Date: d.TransferDate, Valid: true}
		}
		rows = append(rows, row)
	}

	inserter := client.DatasetInProject(e.projectID, e.datasetID).Table(disposalsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("ExportCapitalGains: inserting rows: %w", err)
	}
	return nil
}

// CountRowsForDocument returns how many statement rows a document has in
// the export table, for spot checks after a run.
func (e *Exporter) CountRowsForDocument(ctx context.Context, documentID string) (int64, error) {
	client, err := bigquery.NewClient(ctx, e.projectID)
	if err != nil {
		return 0, fmt.Errorf("CountRowsForDocument: bigquery client: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf(`
		SELECT COUNT(*) AS n
		FROM %s.%s
		WHERE document_id = @document_id
	`, e.datasetID, statementsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "document_id", Value: documentID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("CountRowsForDocument: running query: %w", err)
	}

	var row struct {
		N int64 `bigquery:"n"`
	}
	err = it.Next(&row)
	if err == iterator.Done {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("CountRowsForDocument: reading result: %w", err)
	}
	return row.N, nil
}
