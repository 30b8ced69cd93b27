// Package repository provides the pokemon review repositories.
//
// # Layers
//
// EntityRepository[T] is the generic create/update/delete primitive. It
// stages one change (or a batch) on a session.UnitOfWork and saves it.
// The relationship repositories (Category, Country, Owner, Pokemon, Review,
// Reviewer) add reads, junction traversals and the checks that must hold
// before a mutation, then delegate the write to an EntityRepository.
//
// All repositories built from the same UnitOfWork share its staged changes:
// a relationship repository may stage junction row removals first and let
// the generic Delete commit them together with the endpoint in one Save.
//
// # Results
//
//   - Lookups that find nothing return (nil, nil), never an error.
//   - Mutations return (false, nil) when the store affected no rows.
//   - Duplicate names return ErrCategoryExists or ErrCountryExists,
//     categorized as errors.CategoryConflict.
//   - Missing parents return the matching Err*NotFound sentinel, categorized
//     as errors.CategoryNotFound. Nothing is written in that case.
//   - Store faults return an error categorized as errors.CategoryDatabase.
//
// Sentinels are wrapped, so callers test them with errors.Is.
//
// # Deletes
//
// No delete relies on ON DELETE CASCADE. Deleting a Category, Owner,
// Pokemon or Reviewer stages removal of its junction and review rows in the
// same Save as the entity itself. Deleting a Country that still has owners
// is refused with ErrCountryHasOwners.
//
// # Thread Safety
//
// Repositories are as safe as their UnitOfWork. Use one UnitOfWork, and the
// repositories built on it, per logical request.
package repository
