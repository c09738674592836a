package domain

import "time"

// Reference corpus records. These are owned by the business systems that
// seed them; the pipeline only ever reads them.

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Policy struct {
	ID           int64  `json:"id"`
	PolicyNumber string `json:"policy_number"`
	CustomerID   int64  `json:"customer_id"`
	PolicyType   string `json:"policy_type"`
	Status       string `json:"status"`
}

type Invoice struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    int64     `json:"customer_id"`
	PolicyID      int64     `json:"policy_id"`
	Amount        float64   `json:"amount"`
	InvoiceDate   time.Time `json:"invoice_date"`
	DueDate       time.Time `json:"due_date"`
	Status        string    `json:"status"`
}

type Transaction struct {
	ID              int64     `json:"id"`
	TransactionID   string    `json:"transaction_id"`
	InvoiceID       int64     `json:"invoice_id"`
	CustomerID      int64     `json:"customer_id"`
	Amount          float64   `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
	TransactionType string    `json:"transaction_type"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	ReferenceNumber string    `json:"reference_number"`
}

// ReferenceCorpus is one point-in-time snapshot of all reference records.
// A single scoring pass reads exactly one snapshot.
type ReferenceCorpus struct {
	Customers    []Customer
	Policies     []Policy
	Invoices     []Invoice
	Transactions []Transaction
}
