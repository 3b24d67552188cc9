// Package models defines the core domain models for settleup.
//
// # Models
//
//   - Participant: a person who can pay for or share in expenses
//   - Expense: an immutable record of one payment and how it is split
//   - ExpenseSplit: one participant's share of an expense
//   - SplitDetail: how the splits of an expense were derived (equal,
//     unequal or proportional)
//
// # Design Principles
//
//  1. **Plain data**: models carry no storage or transport concerns
//  2. **IDs over pointers**: expenses reference participants by ID only, so a
//     removed participant leaves a stale reference rather than a dangling pointer
//  3. **Name snapshots**: expenses keep the payee and split participant names
//     they were created with, so history stays readable after a removal
//  4. **Closed split detail**: SplitDetail is a sealed interface; every switch
//     over it handles all three variants
package models
