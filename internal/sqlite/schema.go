package sqlite

// Catalog store DDL: the four coupled collections, the token index side
// tables mirroring multi-entry indices, and the recents collection.
const (
	createDatabases = `CREATE TABLE IF NOT EXISTS databases (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    url TEXT NOT NULL,
    description TEXT NOT NULL,
    size TEXT NOT NULL,
    song_count INTEGER NOT NULL,
    artist_count INTEGER NOT NULL,
    is_active INTEGER NOT NULL
);`

	createSongs = `CREATE TABLE IF NOT EXISTS songs (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL,
    database_id TEXT NOT NULL,
    database_title TEXT NOT NULL,
    source TEXT NOT NULL,
    title TEXT NOT NULL,
    artist_name TEXT NOT NULL,
    title_words TEXT NOT NULL,
    text_words TEXT NOT NULL,
    is_active INTEGER NOT NULL
);`

	createArtists = `CREATE TABLE IF NOT EXISTS artists (
    id TEXT PRIMARY KEY,
    database_id TEXT NOT NULL,
    database_title TEXT NOT NULL,
    name TEXT NOT NULL,
    letter_id TEXT NOT NULL,
    name_words TEXT NOT NULL,
    is_active INTEGER NOT NULL
);`

	createLetters = `CREATE TABLE IF NOT EXISTS letters (
    id TEXT PRIMARY KEY,
    letter TEXT NOT NULL,
    database_id TEXT NOT NULL,
    artist_count INTEGER NOT NULL
);`

	createSongTitleWords = `CREATE TABLE IF NOT EXISTS song_title_words (
    word TEXT NOT NULL,
    song_id TEXT NOT NULL,
    PRIMARY KEY (word, song_id)
);`

	createSongTextWords = `CREATE TABLE IF NOT EXISTS song_text_words (
    word TEXT NOT NULL,
    song_id TEXT NOT NULL,
    PRIMARY KEY (word, song_id)
);`

	createArtistNameWords = `CREATE TABLE IF NOT EXISTS artist_name_words (
    word TEXT NOT NULL,
    artist_id TEXT NOT NULL,
    PRIMARY KEY (word, artist_id)
);`

	createRecents = `CREATE TABLE IF NOT EXISTS recents (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    viewed_at INTEGER NOT NULL,
    payload TEXT NOT NULL
);`
)

// Catalog store secondary indices for range and equality lookups.
const (
	idxSongsArtist      = `CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist_id);`
	idxSongsDatabase    = `CREATE INDEX IF NOT EXISTS idx_songs_database ON songs(database_id);`
	idxArtistsDatabase  = `CREATE INDEX IF NOT EXISTS idx_artists_database ON artists(database_id);`
	idxArtistsLetter    = `CREATE INDEX IF NOT EXISTS idx_artists_letter ON artists(letter_id);`
	idxLettersDatabase  = `CREATE INDEX IF NOT EXISTS idx_letters_database ON letters(database_id);`
	idxDatabasesActive  = `CREATE INDEX IF NOT EXISTS idx_databases_active ON databases(is_active);`
	idxRecentsViewedAt  = `CREATE INDEX IF NOT EXISTS idx_recents_viewed_at ON recents(viewed_at);`
)

// Drafts store DDL: draft catalog shells and their raw content blobs.
const (
	createFileDatabases = `CREATE TABLE IF NOT EXISTS file_databases (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    song_count INTEGER NOT NULL,
    artist_count INTEGER NOT NULL
);`

	createFileContents = `CREATE TABLE IF NOT EXISTS file_contents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    database_id INTEGER NOT NULL,
    data TEXT NOT NULL,
    is_active INTEGER NOT NULL,
    saved_at TEXT NOT NULL
);`

	idxFileContentsDatabase = `CREATE INDEX IF NOT EXISTS idx_file_contents_database ON file_contents(database_id, is_active);`
)

// catalogDDL lists catalog store statements in dependency order.
var catalogDDL = []string{
	createDatabases,
	createSongs,
	createArtists,
	createLetters,
	createSongTitleWords,
	createSongTextWords,
	createArtistNameWords,
	createRecents,
	idxSongsArtist,
	idxSongsDatabase,
	idxArtistsDatabase,
	idxArtistsLetter,
	idxLettersDatabase,
	idxDatabasesActive,
	idxRecentsViewedAt,
}

// draftsDDL lists drafts store statements.
var draftsDDL = []string{
	createFileDatabases,
	createFileContents,
	idxFileContentsDatabase,
}
