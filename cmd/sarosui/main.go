package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/djherbis/atime"
	humanize "github.com/dustin/go-humanize"
	"github.com/tdewolff/argp"

	"github.com/saros-project/sarosui"
	"github.com/saros-project/sarosui/account"
	"github.com/saros-project/sarosui/locale"
	"github.com/saros-project/sarosui/svg"
)

// Version is the current sarosui version.
var Version = "built from source"

var extMap = map[string]string{
	"json": sarosui.SessionType,
	"svg":  sarosui.SVGType,
	"yaml": sarosui.SessionType,
	"yml":  sarosui.SessionType,
}

var (
	hidden             bool
	list               bool
	out                *sarosui.Output
	catalog            *locale.Catalog
	recursive          bool
	quiet              bool
	verbose            int
	version            bool
	watch              bool
	minifyOutput       bool
	precision          int
	format             string
	selectIdentity     string
	localeFile         string
	preserve           []string
	preserveMode       bool
	preserveOwnership  bool
	preserveTimestamps bool
	mimetype           string
)

// Task is a render task.
type Task struct {
	root string
	src  string
	dst  string
}

// NewTask returns a new Task. If output is a directory, the destination mirrors the input path relative to root
// with the extension of the rendered filetype.
func NewTask(root, input, output string) (Task, error) {
	if len(output) != 0 && (output == "." || output[len(output)-1] == os.PathSeparator) {
		rel, err := filepath.Rel(root, input)
		if err != nil {
			return Task{}, err
		}
		ext := filepath.Ext(rel)
		output = filepath.Join(output, rel[:len(rel)-len(ext)]+outputExt(inputMimetype(input)))
	}
	return Task{root, input, output}, nil
}

// Loggers.
var (
	Error   *log.Logger
	Warning *log.Logger
	Info    *log.Logger
)

func main() {
	// os.Exit doesn't execute pending defer calls, this is fixed by encapsulating run()
	os.Exit(run())
}

func run() int {
	var inputs []string
	var output string

	defaultPreserve := []string{"mode", "timestamps"}
	if supportsGetOwnership {
		defaultPreserve = []string{"mode", "ownership", "timestamps"}
	}

	f := argp.New("sarosui")
	f.AddRest(&inputs, "inputs", "Session files (yaml, yml, json) or whiteboard files (svg), leave blank to use stdin")
	f.AddOpt(&output, "o", "output", nil, "Output file or directory, leave blank to use stdout")
	f.AddOpt(&mimetype, "", "type", nil, "Filetype (eg. yaml or image/svg+xml), optional when specifying inputs")
	f.AddOpt(&format, "f", "format", "html", "Account display format (html or text)")
	f.AddOpt(&selectIdentity, "", "select", nil, "Select the account with this identity (user@domain) and update the session file")
	f.AddOpt(&localeFile, "", "locale", nil, "Message catalog in YAML, defaults to English")
	f.AddOpt(&minifyOutput, "m", "minify", false, "Minify HTML and SVG output")
	f.AddOpt(&precision, "", "svg-precision", 0, "Number of significant digits to preserve in numbers, 0 is all")
	f.AddOpt(&recursive, "r", "recursive", false, "Recursively render directories")
	f.AddOpt(&hidden, "a", "all", false, "Render all files, including hidden files and files in hidden directories")
	f.AddOpt(&list, "l", "list", false, "List all accepted filetypes")
	f.AddOpt(&quiet, "q", "quiet", false, "Quiet mode to suppress all output")
	f.AddOpt(argp.Count{I: &verbose}, "v", "verbose", nil, "Verbose mode, set twice for more verbosity")
	f.AddOpt(&watch, "w", "watch", false, "Watch files and render upon changes")
	f.AddOpt(&preserve, "p", "preserve", defaultPreserve, "Preserve options (mode, ownership, timestamps, all)")
	f.AddOpt(&version, "", "version", false, "Version")
	f.Parse()

	if version {
		if !quiet {
			fmt.Printf("sarosui %s\n", Version)
		}
		return 0
	}

	if list {
		if !quiet {
			n := 0
			var keys []string
			for k := range extMap {
				keys = append(keys, k)
				if n < len(k) {
					n = len(k)
				}
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Println(k + strings.Repeat(" ", n-len(k)+2) + extMap[k])
			}
		}
		return 0
	}

	if len(inputs) == 1 && inputs[0] == "-" {
		inputs = inputs[:0] // stdin
	} else if output == "-" {
		output = "" // stdout
	}
	useStdin := len(inputs) == 0

	Error = log.New(io.Discard, "", 0)
	Warning = log.New(io.Discard, "", 0)
	Info = log.New(io.Discard, "", 0)
	if !quiet {
		Error = log.New(os.Stderr, "ERROR: ", 0)
		if 0 < verbose {
			Warning = log.New(os.Stderr, "WARNING: ", 0)
		}
		if 1 < verbose {
			Info = log.New(os.Stderr, "INFO: ", 0)
		}
	}

	// detect mimetype, mimetype=="" means we'll infer mimetype from file extensions
	if slash := strings.Index(mimetype, "/"); slash == -1 && 0 < len(mimetype) {
		filetype, ok := extMap[mimetype]
		if !ok {
			Error.Println("unknown filetype", mimetype)
			return 1
		}
		mimetype = filetype
	} else if 0 < len(mimetype) && mimetype != sarosui.SessionType && mimetype != sarosui.SVGType {
		Error.Println("unknown filetype", mimetype)
		return 1
	}

	if format != "html" && format != "text" {
		Error.Println("unknown format", format, ", use html or text")
		return 1
	}
	if (useStdin || output == "") && watch {
		Error.Println("--watch doesn't work with stdin and stdout, specify input and output")
		return 1
	} else if useStdin && recursive {
		Error.Println("--recursive doesn't work with stdin, specify input")
		return 1
	} else if output == "" && recursive {
		Error.Println("--recursive doesn't work with stdout, specify output")
		return 1
	} else if selectIdentity != "" && watch {
		Error.Println("--select cannot be used together with --watch")
		return 1
	}
	if mimetype == "" && useStdin {
		Error.Println("must specify --type for stdin")
		return 1
	}
	if mimetype == "" {
		if !recursive {
			okAll := true
			for _, input := range inputs {
				if inputMimetype(input) == "" {
					Error.Println("cannot infer filetype from extension in", input, ", set --type explicitly")
					okAll = false
				}
			}
			if !okAll {
				return 1
			}
		}
		Info.Println("infer filetype from file extensions")
	} else {
		Info.Println("use filetype", mimetype)
	}
	if f.IsSet("preserve") && (useStdin || output == "") {
		Error.Println("--preserve cannot be used together with stdin or stdout")
		return 1
	}
	for _, option := range preserve {
		switch option {
		case "all":
			preserveMode = true
			preserveOwnership = true
			preserveTimestamps = true
		case "mode":
			preserveMode = true
		case "ownership":
			preserveOwnership = true
		case "timestamps":
			preserveTimestamps = true
		}
	}
	if preserveOwnership && !supportsGetOwnership {
		Warning.Println(fmt.Errorf("preserve ownership not supported on platform"))
	}

	catalog = locale.Default
	if localeFile != "" {
		r, err := openInputFile(localeFile)
		if err != nil {
			Error.Println(err)
			return 1
		}
		c, err := locale.Load(r)
		r.Close()
		if err != nil {
			Error.Println("cannot load locale "+localeFile+":", err)
			return 1
		}
		catalog = locale.Default.Merge(c)
		Info.Println("loaded", c.Len(), "messages from", localeFile)
	}

	////////////////

	for i, input := range inputs {
		if input == "-" {
			Error.Println("cannot mix files and stdin as input")
			return 1
		}
		inputs[i] = filepath.Clean(input)
		if input[len(input)-1] == os.PathSeparator {
			inputs[i] += string(os.PathSeparator)
		}
	}

	// set output file or directory, empty means stdout
	dirDst := false
	if output != "" {
		dirDst = IsDir(output)
		if !dirDst {
			if 1 < len(inputs) {
				Error.Printf("stat %v: no such file or directory\n", output)
				return 1
			} else if len(inputs) == 1 {
				if info, err := os.Lstat(inputs[0]); err == nil && info.Mode().IsDir() && info.Mode()&os.ModeSymlink == 0 {
					dirDst = true
				}
			}
		}

		output = filepath.Clean(output)
		if dirDst {
			output += string(os.PathSeparator)
		}
	} else if 1 < len(inputs) {
		Error.Println("must specify output directory for multiple input files")
		return 1
	}
	if output == "" {
		Info.Println("render to stdout")
	} else if !dirDst {
		Info.Println("render to output file", output)
	} else {
		Info.Println("render to output directory", output)
	}
	if useStdin {
		Info.Println("render from stdin")
	}

	var err error
	var tasks []Task
	var roots []string
	if useStdin {
		task, err := NewTask("", "", output)
		if err != nil {
			Error.Println(err)
			return 1
		}
		tasks = append(tasks, task)
		roots = append(roots, "")
	} else {
		fsys := NewFS()
		tasks, roots, err = createTasks(fsys, inputs, output)
		if err != nil {
			Error.Println(err)
			return 1
		}
	}
	for _, task := range tasks {
		if task.src != "" && task.dst != "" {
			if sameFile, _ := SameFile(task.src, task.dst); sameFile {
				Error.Println("cannot overwrite input", task.src)
				return 1
			}
		}
	}

	// make output directory
	if dirDst {
		if err := os.MkdirAll(output, 0777); err != nil {
			Error.Println(err)
			return 1
		}
	}

	////////////////

	out = sarosui.NewOutput(minifyOutput, precision)

	fails := 0
	start := time.Now()
	if !watch && (len(tasks) == 1 || 0 < verbose) {
		for _, task := range tasks {
			if ok := process(task); !ok {
				fails++
			}
		}
	} else {
		numWorkers := runtime.NumCPU()
		if 0 < verbose {
			numWorkers = 1
		} else if numWorkers < 4 {
			numWorkers = 4
		}

		chanTasks := make(chan Task, 20)
		chanFails := make(chan int, numWorkers)
		for n := 0; n < numWorkers; n++ {
			go processWorker(chanTasks, chanFails)
		}

		if !watch {
			for _, task := range tasks {
				chanTasks <- task
			}
		} else {
			watcher, err := NewWatcher(recursive)
			if err != nil {
				Error.Println(err)
				return 1
			}
			defer watcher.Close()
			changes := watcher.Run()

			for _, filename := range inputs {
				if err := watcher.AddPath(filename); err != nil {
					Error.Println(err)
					return 1
				}
			}

			for _, task := range tasks {
				watcher.IgnoreNext(task.dst)
				chanTasks <- task
			}

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt)
			for changes != nil {
				select {
				case <-c:
					watcher.Close()
				case file, ok := <-changes:
					if !ok {
						changes = nil
						break
					}
					file = filepath.Clean(file)
					if !fileMatches(file) {
						break
					}

					// find longest common path among roots
					root := ""
					for _, path := range roots {
						pathRel, err1 := filepath.Rel(path, file)
						rootRel, err2 := filepath.Rel(root, file)
						if err2 != nil || err1 == nil && len(pathRel) < len(rootRel) {
							root = path
						}
					}

					if !dirDst {
						root = filepath.Dir(file)
					}
					task, err := NewTask(root, file, output)
					if err != nil {
						Error.Println(err)
						return 1
					}
					watcher.IgnoreNext(task.dst) // skip change on output
					chanTasks <- task
				}
			}
		}

		close(chanTasks)
		for n := 0; n < numWorkers; n++ {
			fails += <-chanFails
		}
	}

	if !watch {
		Info.Println("finished in", time.Since(start))
	}
	if 0 < fails {
		return 1
	}
	return 0
}

func processWorker(chanTasks <-chan Task, chanFails chan<- int) {
	fails := 0
	for task := range chanTasks {
		if ok := process(task); !ok {
			fails++
		}
	}
	chanFails <- fails
}

// inputMimetype returns the filetype of the input, which is --type if set or else inferred from the extension.
func inputMimetype(filename string) string {
	if mimetype != "" {
		return mimetype
	}
	ext := filepath.Ext(filename)
	if 0 < len(ext) {
		ext = ext[1:]
	}
	return extMap[strings.ToLower(ext)]
}

// outputExt returns the extension of files rendered from the given filetype.
func outputExt(inputMimetype string) string {
	switch inputMimetype {
	case sarosui.SessionType:
		if format == "text" {
			return ".txt"
		}
		return ".html"
	case sarosui.SVGType:
		return ".svg"
	}
	return ""
}

func fileMatches(filename string) bool {
	return inputMimetype(filename) != ""
}

func createTasks(fsys fs.FS, inputs []string, output string) ([]Task, []string, error) {
	tasks := []Task{}
	roots := []string{}
	for _, input := range inputs {
		root := filepath.Clean(filepath.Dir(input))
		input = filepath.Clean(input)

		// follow and dereference symlinks
		info, err := fs.Stat(fsys, input)
		if err != nil {
			return nil, nil, err
		}

		if info.Mode().IsRegular() {
			task, err := NewTask(root, input, output)
			if err != nil {
				return nil, nil, err
			}
			tasks = append(tasks, task)
		} else if info.Mode().IsDir() {
			if !recursive {
				Warning.Println("--recursive not specified, omitting directory", input)
				continue
			}

			var walkFn func(string, fs.DirEntry, error) error
			walkFn = func(input string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				} else if d.Name() == "." || d.Name() == ".." {
					return nil
				} else if d.Name() == "" || !hidden && d.Name()[0] == '.' {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}

				if d.Type()&os.ModeSymlink != 0 {
					info, err := fs.Stat(fsys, input)
					if err != nil {
						return err
					}
					if info.IsDir() {
						return fs.WalkDir(fsys, input, walkFn)
					}
					d = fs.FileInfoToDirEntry(info)
				}

				if d.Type().IsRegular() && fileMatches(input) {
					task, err := NewTask(root, input, output)
					if err != nil {
						return err
					}
					tasks = append(tasks, task)
				}
				return nil
			}
			if err := fs.WalkDir(fsys, input, walkFn); err != nil {
				return nil, nil, err
			}
			roots = append(roots, root)
		} else {
			return nil, nil, fmt.Errorf("not a file or directory %s", input)
		}
	}
	return tasks, roots, nil
}

// render returns the rendered input of the given filetype and the filetype of the result.
// Selecting an account writes the updated session back to src.
func render(fileMimetype, src string, b []byte) ([]byte, string, error) {
	switch fileMimetype {
	case sarosui.SessionType:
		s, err := account.ReadSession(bytes.NewReader(b))
		if err != nil {
			return nil, "", err
		}
		if selectIdentity != "" {
			if !s.View(catalog).Select(selectIdentity) {
				return nil, "", fmt.Errorf("%w: %s", account.ErrUnknownAccount, selectIdentity)
			}
			if src == "" {
				Warning.Println("selected", selectIdentity, "but cannot update session from stdin")
			} else if err := writeSession(src, s); err != nil {
				return nil, "", err
			} else {
				Info.Println("select", selectIdentity, "in", src)
			}
		}

		v := s.View(catalog)
		for _, identity := range v.Duplicates() {
			Warning.Println("duplicate account", identity, "in", displayName(src))
		}
		if format == "text" {
			return []byte(v.Terminal() + "\n"), sarosui.TextType, nil
		}
		w := bytes.NewBuffer(make([]byte, 0, 512))
		if err := v.WriteHTML(w); err != nil {
			return nil, "", err
		}
		return w.Bytes(), sarosui.HTMLType, nil
	case sarosui.SVGType:
		shapes, err := svg.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, "", err
		}
		Info.Println("decoded", len(shapes), "shapes from", displayName(src))

		w := bytes.NewBuffer(make([]byte, 0, len(b)))
		enc := svg.Encoder{Precision: precision}
		if err := enc.Encode(w, shapes); err != nil {
			return nil, "", err
		}
		return w.Bytes(), sarosui.SVGType, nil
	}
	return nil, "", fmt.Errorf("unknown filetype %q", fileMimetype)
}

func writeSession(filename string, s *account.Session) error {
	fw, err := openOutputFile(filename)
	if err != nil {
		return err
	}
	if err := s.Write(fw); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}

func displayName(src string) string {
	if src == "" {
		return "stdin"
	}
	return src
}

func process(t Task) bool {
	fileMimetype := inputMimetype(t.src)
	if fileMimetype == "" {
		Warning.Println("cannot infer filetype from extension in", t.src, ", set --type explicitly")
		return false
	}

	srcName := displayName(t.src)
	dstName := t.dst
	if dstName == "" {
		dstName = "stdout"
	}

	fr, err := openInputFile(t.src)
	if err != nil {
		Error.Println(err)
		return false
	}
	b, err := io.ReadAll(fr)
	fr.Close()
	if err != nil {
		Error.Println("cannot render "+srcName+":", err)
		return false
	}

	startTime := time.Now()
	rendered, outMimetype, err := render(fileMimetype, t.src, b)
	if err != nil {
		Error.Println("cannot render "+srcName+":", err)
		return false
	}

	fw, err := openOutputFile(t.dst)
	if err != nil {
		Error.Println(err)
		return false
	}
	w := &countWriter{w: fw}
	err = out.Write(outMimetype, w, rendered)
	if t.dst != "" {
		fw.Close()
	}
	if err != nil {
		Error.Println("cannot write "+dstName+":", err)
		return false
	}

	if !quiet && t.dst != "" {
		dur := time.Since(startTime)
		stats := fmt.Sprintf("(%9v, %6v, %6v)", dur, humanize.Bytes(uint64(len(b))), humanize.Bytes(uint64(w.n)))
		fmt.Println(stats, "-", srcName, "to", dstName)
	}

	preserveAttributes(t.src, t.root, t.dst)
	return true
}

func preserveAttributes(src, root, dst string) {
	if src == "" || dst == "" {
		return
	}

	// make sure we only set attributes on directories and files inside the root destination
	var err error
	src, err = filepath.Rel(root, src)
	if err != nil {
		// should never occur
		Error.Printf("src is not part of root path: src=%s root=%s", src, root)
		return
	}

Next:
	srcInfo, err := os.Stat(filepath.Join(root, src))
	if err != nil {
		Warning.Println(err)
		return
	}

	if preserveMode {
		err = os.Chmod(dst, srcInfo.Mode().Perm())
		if err != nil {
			Warning.Println(err)
		}
	}
	if preserveOwnership {
		if uid, gid, ok := getOwnership(srcInfo); ok {
			err = os.Chown(dst, uid, gid)
			if err != nil {
				Warning.Println(err)
			}
		}
	}
	if preserveTimestamps {
		err = os.Chtimes(dst, atime.Get(srcInfo), srcInfo.ModTime())
		if err != nil {
			Warning.Println(err)
		}
	}

	src = filepath.Dir(src)
	dst = filepath.Dir(dst)
	if src != "." {
		// go up to but excluding the root path
		goto Next
	}
}
