// Package collab runs a roundtable discussion between several participants.
//
// A run has three strictly sequential phases. In the analysis phase every
// participant answers the task independently. In the critique phase every
// participant reviews all analyses, its own included. In the synthesis phase
// the highest-priority participant merges analyses and critiques into the
// final answer.
//
// Analysis and critique fan out to all participants concurrently and wait
// for every call to return. A failing call never aborts its phase; its slot
// holds an "[Error: ...]" marker instead. A failing synthesis is replaced by
// a fallback built from the analyses. Only faults outside individual calls
// (a canceled context between phases, a broken prompt template) end a run
// early, and even then Collaborate returns a Result rather than an error.
//
// Basic usage:
//
//	reg := participant.NewRegistry(cfg.Providers)
//	c := collab.New(reg)
//	res := c.Collaborate(ctx, "Design a rate limiter", collab.NewWriterSink(os.Stdout))
//	if err := res.Err(); err != nil {
//		// rejected or faulted
//	}
//	fmt.Println(res.FinalText)
package collab
