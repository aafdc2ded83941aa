package configuration

const (
	// StoreKindDir selects the [DirStore].
	StoreKindDir = "dir"

	// StoreKindYAML selects the [YAMLStore].
	StoreKindYAML = "yaml"

	// FoldersDir is the per-group directory holding the folder entries of a
	// [DirStore].
	FoldersDir = "folders"

	// EntrySuffix is the file suffix of a [DirStore] folder entry.
	EntrySuffix = ".cfg"

	// MaxGroupFolders is the number of folders a group can hold, bounded by
	// the width of a delegate index.
	MaxGroupFolders = 1 << 16

	stagingSuffix = ".staging"
	backupSuffix  = ".previous"

	// SettingFolderPath is the folder entry key holding the folder path.
	SettingFolderPath = "Path"

	// SettingStore is the application setting selecting the store kind.
	SettingStore = "UNIONFS_STORE"

	// SettingStorePath is the application setting locating the store.
	SettingStorePath = "UNIONFS_STORE_PATH"

	// SettingLogLevel is the application setting for the log level.
	SettingLogLevel = "UNIONFS_LOG_LEVEL"

	// DefaultLogLevel is used when no log level is configured.
	DefaultLogLevel = "info"

	// AppDir is the directory below the user configuration directory.
	AppDir = "unionfs"
)
