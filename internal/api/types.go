package api

import (
	"github.com/nestdotland/arweave-go/winston"
)

// NetworkInfo represents the /info response.
type NetworkInfo struct {
	Network          string `json:"network"`
	Version          int    `json:"version"`
	Release          int    `json:"release"`
	Height           int64  `json:"height"`
	Current          string `json:"current"`
	Blocks           int64  `json:"blocks"`
	Peers            int    `json:"peers"`
	QueueLength      int    `json:"queue_length"`
	NodeStateLatency int    `json:"node_state_latency"`
}

// Tag is a transaction tag as carried on the wire. Name and value are
// base64url-encoded.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Transaction is the JSON form of a transaction used by GET /tx/{id} and
// POST /tx. Binary fields are base64url strings and amounts are decimal
// strings.
type Transaction struct {
	Format    int             `json:"format"`
	ID        string          `json:"id"`
	LastTx    string          `json:"last_tx"`
	Owner     string          `json:"owner"`
	Tags      []Tag           `json:"tags"`
	Target    string          `json:"target"`
	Quantity  winston.Winston `json:"quantity"`
	Data      string          `json:"data"`
	DataSize  string          `json:"data_size"`
	DataRoot  string          `json:"data_root"`
	Reward    winston.Winston `json:"reward"`
	Signature string          `json:"signature"`
}

// TransactionStatus represents the /tx/{id}/status response. Pending is set
// when the node has accepted the transaction but not mined it; the other
// fields are then zero.
type TransactionStatus struct {
	Pending               bool   `json:"-"`
	BlockHeight           int64  `json:"block_height"`
	BlockIndepHash        string `json:"block_indep_hash"`
	NumberOfConfirmations int64  `json:"number_of_confirmations"`
}
