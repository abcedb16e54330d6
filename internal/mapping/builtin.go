package mapping

// Builtin returns the built-in table covering the common source
// standard library. Templates use full Rust paths where possible so
// most entries need no use statements.
func Builtin() *Table {
	t := NewTable("builtin")

	// os
	t.Add("os.getcwd", Entry{
		Template: "std::env::current_dir().unwrap().to_string_lossy().to_string()",
		Fallible: true,
	})
	t.Add("os.makedirs", Entry{
		Template: "std::fs::create_dir_all({arg0}).unwrap()",
		Fallible: true,
	})
	t.Add("os.remove", Entry{
		Template: "std::fs::remove_file({arg0}).unwrap()",
		Fallible: true,
	})
	t.Add("os.rename", Entry{
		Template: "std::fs::rename({arg0}, {arg1}).unwrap()",
		Fallible: true,
	})
	t.Add("os.path.exists", Entry{
		Template: "std::path::Path::new(&{arg0}).exists()",
	})
	t.Add("os.path.join", Entry{
		Template: "std::path::Path::new(&{arg0}).join(&{arg1}).to_string_lossy().to_string()",
	})
	t.Add("os.path.basename", Entry{
		Template: "std::path::Path::new(&{arg0}).file_name().map(|n| n.to_string_lossy().to_string()).unwrap_or_default()",
	})

	// sys
	t.Add("sys.argv", Entry{
		Template: "std::env::args().collect::<Vec<String>>()",
	})
	t.Add("sys.exit", Entry{
		Template: "std::process::exit({arg0} as i32)",
	})
	t.Add("sys.platform", Entry{
		Template: "std::env::consts::OS.to_string()",
	})

	// json via serde
	t.Add("json.dumps", Entry{
		Template:  "serde_json::to_string(&{arg0}).unwrap()",
		CargoDeps: []string{"serde", "serde_json"},
		Fallible:  true,
	})
	t.Add("json.loads", Entry{
		Template:  "serde_json::from_str(&{arg0}).unwrap()",
		CargoDeps: []string{"serde", "serde_json"},
		Fallible:  true,
	})

	// pathlib
	t.Add("pathlib.Path", Entry{
		Template: "std::path::PathBuf::from({args})",
		Imports:  []string{"std::path::PathBuf"},
	})

	// tempfile
	t.Add("tempfile.TemporaryDirectory", Entry{
		Template:  "tempfile::tempdir().unwrap()",
		CargoDeps: []string{"tempfile"},
		Fallible:  true,
	})
	t.Add("tempfile.NamedTemporaryFile", Entry{
		Template:  "tempfile::NamedTempFile::new().unwrap()",
		CargoDeps: []string{"tempfile"},
		Fallible:  true,
	})

	// time
	t.Add("time.time", Entry{
		Template: "std::time::SystemTime::now().duration_since(std::time::UNIX_EPOCH).unwrap().as_secs_f64()",
	})
	t.Add("time.sleep", Entry{
		Template: "std::thread::sleep(std::time::Duration::from_secs_f64({args}))",
	})
	t.Add("time.monotonic", Entry{
		Template: "std::time::Instant::now().elapsed().as_secs_f64()",
	})

	// datetime via chrono
	t.Add("datetime.datetime.now", Entry{
		Template:  "chrono::Local::now()",
		CargoDeps: []string{"chrono"},
	})
	t.Add("datetime.datetime.utcnow", Entry{
		Template:  "chrono::Utc::now()",
		CargoDeps: []string{"chrono"},
	})
	t.Add("datetime.date.today", Entry{
		Template:  "chrono::Local::now().date_naive()",
		CargoDeps: []string{"chrono"},
	})

	// logging via the log crate
	for py, rust := range map[string]string{
		"debug":    "debug",
		"info":     "info",
		"warning":  "warn",
		"error":    "error",
		"critical": "error",
	} {
		t.Add("logging."+py, Entry{
			Template:  "log::" + rust + `!("{}", {args})`,
			CargoDeps: []string{"log", "env_logger"},
		})
	}

	// random
	t.Add("random.random", Entry{
		Template:  "rand::random::<f64>()",
		CargoDeps: []string{"rand"},
	})
	t.Add("random.randint", Entry{
		Template:  "rand::rng().random_range({arg0}..={arg1})",
		CargoDeps: []string{"rand"},
	})

	// shutil
	t.Add("shutil.which", Entry{
		Template:  "which::which({arg0}).unwrap().to_string_lossy().to_string()",
		CargoDeps: []string{"which"},
		Fallible:  true,
	})

	// typed members of recognized value types
	t.AddMember("datetime.strftime", Entry{
		Template: "{self}.format({args}).to_string()",
	})
	t.AddMember("datetime.timestamp", Entry{
		Template: "{self}.timestamp() as f64",
	})
	t.AddMember("datetime.isoformat", Entry{
		Template: "{self}.to_rfc3339()",
	})
	t.AddMember("datetime.date", Entry{
		Template: "{self}.date_naive()",
	})
	for _, unit := range []string{"year", "month", "day", "hour", "minute", "second"} {
		t.AddMember("datetime."+unit, Entry{
			Template: "{self}." + unit + "()",
		})
	}
	for _, unit := range []string{"year", "month", "day"} {
		t.AddMember("date."+unit, Entry{
			Template: "{self}." + unit + "()",
		})
	}
	t.AddMember("timedelta.total_seconds", Entry{
		Template: "{self}.num_seconds() as f64",
	})

	return t
}
