// Package simplecms provides a reusable library for managing the lifecycle of
// textual content items: draft/published/archived states, slug derivation and
// uniqueness, owner-scoped queries, and view counting on public reads.
//
// It exposes a single Service interface that orchestrates content creation,
// partial updates, deletion, owner-scoped listing, and public resolution by
// slug. Implementations of repositories (memory, Postgres) and media blob
// stores (memory, filesystem, S3) are provided under subpackages.
//
// Every operation takes the acting identity explicitly. The library never
// reads ambient session state; authentication happens at the HTTP boundary
// and is passed down as an Identity value.
package simplecms
