package problemgen

const assessPrompt = `You are a senior reviewer of statistics papers. Decide whether the given paper excerpt can be adapted into a statistics exam question.

Criteria:
1. Data completeness: the excerpt states the key metadata, such as sample size (N), variable types (continuous or categorical) and grouping.
2. Clear objective: there is a clear research question, for example "compare the difference between two groups" or "explore a correlation".
3. Verifiability: from the information given, a statistics expert can infer a single correct analysis method or conclusion.

Return JSON:
{
    "is_suitable": boolean,
    "missing_info": "if information is missing, list what is missing (e.g. whether samples are independent)",
    "potential_task": "what kind of question fits, e.g. 'choose the test' or 'interpret the confidence interval'"
}`

const decontaminatePrompt = `You are a professional academic editor. Rewrite the given paper excerpt as a "study scenario description" for a statistics exam.

Strict constraints:
1. Decontamination:
   - Remove every explicit statistical method name (e.g. "Chi-square", "t-test", "ANOVA", "Regression").
   - Remove test-statistic symbols that hint at the method (e.g. "t = ...", "F = ...", "χ² = ...").
   - If the excerpt says "Differences were assessed using a chi-squared test", rewrite it as "Researchers aimed to assess the differences in proportions between the groups."

2. Feature retention:
   - Keep the description of the data source (e.g. "11,486 plasma samples from the HUNT study").
   - Keep variable definitions (e.g. "cognitive status (Dementia, MCI, CU)" and "ADNC positivity (binary)").
   - Keep sample sizes and the grouping structure.

3. Output:
   Return only the rewritten text. It should read like the background section of an applied exam problem.`

const generatePrompt = `You are an expert author of statistics exams. Based on the study scenario description provided, write one single-answer multiple-choice question.

Requirements:
1. Focus: statistical method selection.
2. Stem: "Given the study design and data types above, which statistical test should the researchers use to determine [specific research goal]?"
3. Options:
   - Provide exactly 4 options keyed A, B, C and D.
   - Distractors must be plausible. For example, when proportions are compared, offer a t-test or ANOVA as wrong options, since beginners often confuse tests for continuous and categorical variables.
4. Analysis:
   - Explain why the correct option is the best match, based on the data distribution and variable types.
   - Explain why each other option is wrong (e.g. "ANOVA is for continuous outcomes, while the outcome here is binary").

Output strictly in this JSON format:
{
    "stem": "question text...",
    "options": {
        "A": "...",
        "B": "...",
        "C": "...",
        "D": "..."
    },
    "answer": "A",
    "analysis": "detailed analysis..."
}`
