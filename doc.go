// Package linelog writes timestamped, tagged lines to a single log file and
// keeps that file within a maximum number of lines.
//
// Every entry is one line shaped like:
//
//	05-Mar-2024 14:07:09 UTC [INFO] : message text \n
//
// When rotation is enabled and an append pushes the file past Rotation.MaxLines,
// the oldest lines are removed in place: the remainder of the file is shifted
// toward the beginning in small chunks and the file is truncated. Nothing is
// ever renamed or compressed, and there is only one file per Logger.
//
// The line count is taken on every append by streaming the file, so an append
// costs time proportional to the file size. This is intended for modestly sized
// logs, such as a few thousand lines kept on a device for support requests.
//
// Logging is best-effort. The leveled methods never return errors or panic;
// failures go to a pluggable Sink and are available from LastError. Appends
// are serialized per Logger and per file path within a process. Nothing
// coordinates writers in different processes.
//
//	logger, err := linelog.New(linelog.NewBuilder().
//		FileName("TejaLogs").
//		Limit(true, 15).
//		TimeFormat(true, "dd-MMM-yyyy hh:mm:ss aa").
//		Build(), "/var/lib/myapp")
//	if err != nil {
//		panic(err)
//	}
//
//	logger.Info("device connected")
//	logger.Warn("battery low", "power")
//
// The included `lineshift` and `timefmt` packages hold the in-place line
// removal and the time stamp renderer, and may be used on their own.
//
//	https://pkg.go.dev/golift.io/linelog/lineshift
//	https://pkg.go.dev/golift.io/linelog/timefmt
package linelog
