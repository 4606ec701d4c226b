// 31 July 2020

/*

Randseq makes random nucleotide sequences for testing other programs.
Usage:
	randseq [options] [out1 [out2]]
will generate n sequences of length l and write them to out1, or to
stdout if no file is given. If -L is given, we make pairs. The first
mate goes to out1, the second (length L) to out2, and record i in one
file is the mate of record i in the other.

Flags:
	-n
		number of records (pairs). Default 1000.
	-l
		length of primary sequences. Default 100.
	-L
		length of secondary sequences. Default 0, meaning single reads.
	-f
		a for fasta, q for fastq. A file name ending in .fa, .fasta,
		.fq or .fastq (possibly followed by .gz or .zst) overrides this.
	-S
		random number seed. Without it, a seed is taken from entropy and
		printed if -v is set, so a run can be repeated.
	-c
		compress. Also switched on if all the output names end in .gz
		or .zst.
	-z
		gzip or zstd. A .zst suffix also chooses zstd.
	-T
		number of compression threads. 0 means all CPUs, and we never
		use more than there are CPUs.
	-b
		compression block size.
	-v
		verbose

Sequences are uniformly random over A, C, G and T. Quality strings in
fastq are all '?'. There is no attempt to look like real data.
Compressed output is a series of gzip members (or zstd frames), one per
block, which any gzip reader treats as a single file. Its contents do
not depend on the number of threads.

*/
package main
