package state

// Persisted keys
const (
	KeyIsLoggedIn     = "libraryIsLoggedIn"
	KeyCurrentUser    = "libraryCurrentUser"
	KeyBorrowedBooks  = "libraryBorrowedBooks"
	KeyPurchasedBooks = "libraryPurchasedBooks"
	KeyEbookCatalog   = "libraryEbookCatalog"
)
