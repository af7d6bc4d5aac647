// Package diagnostics collects the timing and residual statistics that
// accompany a mapping/localization run without being load-bearing for
// either algorithm. It exists to supplement the original implementation's
// informal self.time accumulators with a structured, inspectable
// equivalent, and to report scan-matcher fit quality (spec §4.2.3's
// Cauchy-weighted cost, summarized rather than raw).
package diagnostics
