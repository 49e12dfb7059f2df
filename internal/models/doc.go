// Package models defines the core domain models for the rider settlement
// backend.
//
// # Models
//
//   - Tenant: an isolated branch/organization; all data is scoped to one tenant
//   - Profile: a user account (rider or admin) tied to a tenant
//   - Upload: one attempted spreadsheet ingestion, tracked through a status lifecycle
//   - OfficialSettlement: one rider's pay breakdown produced by one upload
//   - ParsingTemplate: a tenant-defined column mapping used to parse uploads
//
// # Design Principles
//
//  1. **Tenant isolation**: every row carries a tenant ID; queries never cross tenants
//  2. **Nullable money fields**: settlement amounts are pointers so a missing
//     spreadsheet cell stays NULL in the database instead of becoming zero
//  3. **Avoid circular references**: relationships use ID strings, not pointers
package models
