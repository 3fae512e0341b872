// Package shareledger implements the ownership ledger inside the
// asset-governance context.
//
// The module owns fractional share balances for a single indivisible asset:
// paid owner registration, balance lookups, share transfers between registered
// accounts, and the fixed total supply. Vote weighing and sale proceeds
// distribution in the sale-governance module both read this ledger. It keeps
// business rules in the application layer and isolates infrastructure concerns
// behind ports and adapters.
package shareledger
