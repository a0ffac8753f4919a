package render

// RowLockingLevel indicates the level of row-level locking support.
type RowLockingLevel int

const (
	RowLockingNone  RowLockingLevel = iota // No row locking
	RowLockingBasic                        // FOR UPDATE, FOR SHARE
	RowLockingFull                         // + FOR NO KEY UPDATE, FOR KEY SHARE
)

// UpsertStyle is the conflict-resolution syntax of INSERT.
type UpsertStyle int

const (
	UpsertNone           UpsertStyle = iota
	UpsertOnConflict                 // ON CONFLICT (...) DO NOTHING | DO UPDATE SET
	UpsertOnDuplicateKey             // INSERT IGNORE | ON DUPLICATE KEY UPDATE
)

// ReturningStyle is the syntax used to hand back modified rows.
type ReturningStyle int

const (
	ReturningNone   ReturningStyle = iota
	ReturningClause                // trailing RETURNING ...
	ReturningOutput                // OUTPUT INSERTED.* / DELETED.* before VALUES or WHERE
)

// JSONStyle is how JSON field access is spelled.
type JSONStyle int

const (
	JSONNone     JSONStyle = iota
	JSONArrow              // ->, ->>
	JSONFunction           // JSON_EXTRACT / JSON_UNQUOTE
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	Upsert                   UpsertStyle
	Returning                ReturningStyle
	JSON                     JSONStyle
	RowLocking               RowLockingLevel // FOR UPDATE/SHARE support
	ReturningOnInsert        bool
	ReturningOnUpdate        bool
	ReturningOnDelete        bool
	DistinctOn               bool // DISTINCT ON (expr, ...)
	CaseInsensitiveLike      bool // ILIKE operator
	Arrays                   bool // native array values
	WindowFunctions          bool // OVER (...)
	NullsOrdering            bool // NULLS FIRST / LAST
	FullOuterJoin            bool
	RightJoin                bool
	LockWait                 bool // NOWAIT / SKIP LOCKED
	LockOf                   bool // FOR UPDATE OF t
	UpdateLimit              bool // UPDATE ... ORDER BY ... LIMIT
	DeleteLimit              bool // DELETE ... ORDER BY ... LIMIT
	ParenthesizedSetOperands bool // (SELECT ...) UNION (SELECT ...)
	QuantifiedSubquery       bool // = ANY (SELECT ...), > ALL (SELECT ...)
	CTEOnInsert              bool // WITH ... INSERT
	CTEOnUpdateDelete        bool // WITH ... UPDATE / DELETE
	UnsignedBigint           bool // uint64 above MaxInt64 can be bound
	BooleanIs                bool // IS TRUE / IS FALSE
}

// PlaceholderStyle is the spelling of bound parameters.
type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota // ?
	PlaceholderDollar                           // $1, $2
	PlaceholderColon                            // :1, :2
	PlaceholderAtP                              // @p1, @p2
)

// PaginationStyle is the spelling of LIMIT and OFFSET.
type PaginationStyle int

const (
	PaginationLimitOffset PaginationStyle = iota // LIMIT n OFFSET m
	PaginationOffsetFetch                        // OFFSET m ROWS FETCH NEXT n ROWS ONLY
)

// Descriptor is the constant configuration of a dialect. The rendering
// engine consults it for every syntax decision; nothing about a dialect
// lives in the AST.
type Descriptor struct {
	Name         string
	QuoteOpen    string
	QuoteClose   string
	TrueLiteral  string
	FalseLiteral string
	// NoLimit is written as the LIMIT when only OFFSET is set, for
	// dialects whose grammar has no standalone OFFSET. Empty means OFFSET
	// may stand alone.
	NoLimit string
	// DefaultValues is appended to INSERT INTO t when a row of defaults is
	// inserted.
	DefaultValues string
	// RecursiveKeyword follows WITH in recursive queries; some dialects
	// infer recursion and have no keyword.
	RecursiveKeyword string
	// CurrentDate replaces the CURRENT_DATE keyword when set.
	CurrentDate string
	// ShareLock replaces FOR SHARE when set.
	ShareLock string

	Placeholder  PlaceholderStyle
	Pagination   PaginationStyle
	Capabilities Capabilities
}
